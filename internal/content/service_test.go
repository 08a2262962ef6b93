package content

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/llm"
)

type fakeLLM struct {
	mu    sync.Mutex
	text  string
	err   error
	delay time.Duration
	reqs  []llm.Request
}

func (f *fakeLLM) Generate(ctx context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs)
}

func TestGenerateSummaryFallbackContainsRole(t *testing.T) {
	svc := NewService(nil, 0)

	res, err := svc.GenerateSummary(context.Background(), SummaryInput{Name: "Ada", TargetRole: "Data Analyst"})
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Contains(t, res.Value, "Data Analyst")
	assert.NotContains(t, res.Value, "Ada")
}

func TestGenerateSummaryRequiresNameAndRole(t *testing.T) {
	svc := NewService(nil, 0)

	_, err := svc.GenerateSummary(context.Background(), SummaryInput{Name: "Ada"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.GenerateSummary(context.Background(), SummaryInput{Name: "  ", TargetRole: "Engineer"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateSummaryUsesModel(t *testing.T) {
	model := &fakeLLM{text: "  A seasoned engineer.  \n"}
	svc := NewService(model, time.Second)

	res, err := svc.GenerateSummary(context.Background(), SummaryInput{
		Name:       "Ada",
		TargetRole: "Engineer",
		Skills:     []string{"Go", "SQL"},
	})
	require.NoError(t, err)
	assert.Equal(t, SourceModel, res.Source)
	assert.Equal(t, "A seasoned engineer.", res.Value)

	require.Equal(t, 1, model.calls())
	req := model.reqs[0]
	assert.Contains(t, req.Prompt, "Ada")
	assert.Contains(t, req.Prompt, "Go, SQL")
	assert.Contains(t, req.Prompt, "various roles")
	assert.NotEmpty(t, req.System)
	assert.False(t, req.JSON)
}

func TestModelFailuresFallBack(t *testing.T) {
	cases := map[string]*fakeLLM{
		"error": {err: errors.New("boom")},
		"empty": {text: "   "},
	}
	for name, model := range cases {
		t.Run(name, func(t *testing.T) {
			svc := NewService(model, time.Second)
			res, err := svc.GenerateSummary(context.Background(), SummaryInput{Name: "Ada", TargetRole: "Designer"})
			require.NoError(t, err)
			assert.Equal(t, SourceFallback, res.Source)
			assert.Contains(t, res.Value, "Designer")
			assert.Equal(t, 1, model.calls(), "no retries")
		})
	}
}

func TestModelTimeoutFallsBack(t *testing.T) {
	model := &fakeLLM{text: "late", delay: time.Second}
	svc := NewService(model, 20*time.Millisecond)

	res, err := svc.ImproveDescription(context.Background(), DescriptionInput{Description: "Built a website"})
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
}

func TestModelCallIgnoresCallerCancellation(t *testing.T) {
	model := &fakeLLM{text: "ok", delay: 30 * time.Millisecond}
	svc := NewService(model, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := svc.GenerateSummary(ctx, SummaryInput{Name: "Ada", TargetRole: "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, SourceModel, res.Source)
	assert.Equal(t, "ok", res.Value)
}

func TestImproveDescriptionFallback(t *testing.T) {
	svc := NewService(nil, 0)

	res, err := svc.ImproveDescription(context.Background(), DescriptionInput{Description: "Built a website", Position: "Engineer"})
	require.NoError(t, err)
	lines := strings.Split(res.Value, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "• Built a website", lines[0])
	for i, bullet := range fallbacks.DescriptionBullets {
		assert.Equal(t, "• "+bullet, lines[i+1])
	}
}

func TestImproveDescriptionPrompt(t *testing.T) {
	model := &fakeLLM{text: "• Shipped"}
	svc := NewService(model, time.Second)

	_, err := svc.ImproveDescription(context.Background(), DescriptionInput{Description: "Built a website", Company: "Acme"})
	require.NoError(t, err)
	require.Equal(t, 1, model.calls())
	assert.Contains(t, model.reqs[0].Prompt, "professional role at Acme")
	assert.Contains(t, model.reqs[0].Prompt, "Built a website")

	_, err = svc.ImproveDescription(context.Background(), DescriptionInput{Description: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 1, model.calls())
}

func TestSuggestSkillsFallback(t *testing.T) {
	svc := NewService(nil, 0)

	res, err := svc.SuggestSkills(context.Background(), SkillsInput{TargetRole: "Astronaut"})
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, fallbacks.DefaultSkills, res.Value)

	res, err = svc.SuggestSkills(context.Background(), SkillsInput{TargetRole: "data analyst"})
	require.NoError(t, err)
	assert.Equal(t, fallbacks.Skills["Data Analyst"], res.Value)

	// callers cannot corrupt the table
	res.Value[0] = "mutated"
	again, _ := svc.SuggestSkills(context.Background(), SkillsInput{TargetRole: "Data Analyst"})
	assert.Equal(t, "Python", again.Value[0])

	_, err = svc.SuggestSkills(context.Background(), SkillsInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSuggestSkillsParsesModel(t *testing.T) {
	model := &fakeLLM{text: "Go, Kubernetes ,, SQL,  "}
	svc := NewService(model, time.Second)

	res, err := svc.SuggestSkills(context.Background(), SkillsInput{TargetRole: "Backend Engineer"})
	require.NoError(t, err)
	assert.Equal(t, SourceModel, res.Source)
	assert.Equal(t, []string{"Go", "Kubernetes", "SQL"}, res.Value)
}

func TestSuggestSkillsEmptyParseFallsBack(t *testing.T) {
	model := &fakeLLM{text: " , ,"}
	svc := NewService(model, time.Second)

	res, err := svc.SuggestSkills(context.Background(), SkillsInput{TargetRole: "Product Manager"})
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, fallbacks.Skills["Product Manager"], res.Value)
}

func TestAnalyzeResumeRequiresData(t *testing.T) {
	svc := NewService(nil, 0)
	for _, in := range []any{nil, json.RawMessage(nil), json.RawMessage("null"), json.RawMessage(`""`), json.RawMessage("{bad")} {
		_, err := svc.AnalyzeResume(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %v", in)
	}
}

func TestAnalyzeResumeFallback(t *testing.T) {
	svc := NewService(nil, 0)

	res, err := svc.AnalyzeResume(context.Background(), json.RawMessage(`{"title":"CV"}`))
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, 75, res.Value.Score)
	assert.Len(t, res.Value.Suggestions, 6)
}

func TestAnalyzeResumeModel(t *testing.T) {
	model := &fakeLLM{text: "Here you go:\n```json\n{\"score\": 142, \"suggestions\": [\"Add metrics\"]}\n```"}
	svc := NewService(model, time.Second)

	res, err := svc.AnalyzeResume(context.Background(), map[string]any{"title": "CV"})
	require.NoError(t, err)
	assert.Equal(t, SourceModel, res.Source)
	assert.Equal(t, Analysis{Score: 100, Suggestions: []string{"Add metrics"}}, res.Value)

	require.Equal(t, 1, model.calls())
	assert.True(t, model.reqs[0].JSON)
	assert.Equal(t, analysisPrompt.maxTokens, model.reqs[0].MaxTokens)
	assert.Contains(t, model.reqs[0].Prompt, "\"title\": \"CV\"")
}

func TestAnalyzeResumeAcceptsStringScore(t *testing.T) {
	model := &fakeLLM{text: "{\n \"score\": \"85\",\n \"suggestions\": [\n \"Add metrics\",\n \"Tighten summary\"\n ]\n}"}
	svc := NewService(model, time.Second)

	res, err := svc.AnalyzeResume(context.Background(), json.RawMessage(`{"title":"CV"}`))
	require.NoError(t, err)
	assert.Equal(t, SourceModel, res.Source)
	assert.Equal(t, Analysis{Score: 85, Suggestions: []string{"Add metrics", "Tighten summary"}}, res.Value)
}

func TestAnalyzeResumeObjectWithoutFieldsFallsBack(t *testing.T) {
	model := &fakeLLM{text: `{"rating": 90}`}
	svc := NewService(model, time.Second)

	res, err := svc.AnalyzeResume(context.Background(), json.RawMessage(`{"title":"CV"}`))
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, fallbacks.analysis(), res.Value)
}
