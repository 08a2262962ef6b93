package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
)

const (
	DefaultTimeout = 20 * time.Second

	opSummary     = "generate_summary"
	opDescription = "improve_description"
	opSkills      = "suggest_skills"
	opAnalysis    = "analyze_resume"
)

var errModelUnavailable = errors.New("model not configured")

// Service produces resume content with the model when available and static
// fallbacks otherwise. Only input validation errors are returned to callers.
type Service struct {
	// LLM is nil when no credential is configured; every call then falls back.
	LLM     llm.Client
	Timeout time.Duration
}

// NewService constructs a Service. A nil client means fallback-only.
func NewService(client llm.Client, timeout time.Duration) *Service {
	return &Service{LLM: client, Timeout: timeout}
}

// Configured reports whether a model client is present.
func (s *Service) Configured() bool {
	return s != nil && s.LLM != nil
}

// GenerateSummary drafts a 3-4 sentence professional summary.
func (s *Service) GenerateSummary(ctx context.Context, in SummaryInput) (Result[string], error) {
	in.Name = strings.TrimSpace(in.Name)
	in.TargetRole = strings.TrimSpace(in.TargetRole)
	if in.Name == "" || in.TargetRole == "" {
		return Result[string]{}, errSummaryInput
	}
	return generate(ctx, s, opSummary, buildSummaryRequest(in), textResult, func() string {
		return fallbacks.summary(in.TargetRole)
	}), nil
}

// ImproveDescription rewrites a job description as achievement-focused bullets.
func (s *Service) ImproveDescription(ctx context.Context, in DescriptionInput) (Result[string], error) {
	in.Description = strings.TrimSpace(in.Description)
	in.Position = strings.TrimSpace(in.Position)
	in.Company = strings.TrimSpace(in.Company)
	if in.Description == "" {
		return Result[string]{}, errDescriptionInput
	}
	return generate(ctx, s, opDescription, buildDescriptionRequest(in), textResult, func() string {
		return fallbacks.description(in.Description)
	}), nil
}

// SuggestSkills lists skills relevant to the target role.
func (s *Service) SuggestSkills(ctx context.Context, in SkillsInput) (Result[[]string], error) {
	in.TargetRole = strings.TrimSpace(in.TargetRole)
	in.Experience = strings.TrimSpace(in.Experience)
	if in.TargetRole == "" {
		return Result[[]string]{}, errSkillsInput
	}
	parse := func(text string) ([]string, bool) {
		skills := parseSkills(text)
		return skills, len(skills) > 0
	}
	return generate(ctx, s, opSkills, buildSkillsRequest(in), parse, func() []string {
		return fallbacks.skills(in.TargetRole)
	}), nil
}

// AnalyzeResume scores a resume document (any JSON-serializable value) and
// suggests improvements. The score is always within [0,100] and suggestions
// are never empty.
func (s *Service) AnalyzeResume(ctx context.Context, resume any) (Result[Analysis], error) {
	resumeJSON, err := indentResume(resume)
	if err != nil {
		return Result[Analysis]{}, errAnalysisInput
	}
	return generate(ctx, s, opAnalysis, buildAnalysisRequest(resumeJSON), parseAnalysis, fallbacks.analysis), nil
}

// generate runs one model attempt, parses it, and substitutes the fallback on
// absence, error, timeout, empty output, or unusable output.
func generate[T any](ctx context.Context, s *Service, op string, req llm.Request, parse func(string) (T, bool), fallback func() T) Result[T] {
	text, err := s.complete(ctx, op, req)
	if err == nil {
		if value, ok := parse(text); ok {
			metrics.ObserveGeneration(op, string(SourceModel))
			return Result[T]{Value: value, Source: SourceModel}
		}
		err = errors.New("model output unusable")
	}
	if !errors.Is(err, errModelUnavailable) {
		telemetry.Warn("content.fallback", map[string]any{
			"operation": op,
			"error":     err,
		})
	}
	metrics.ObserveGeneration(op, string(SourceFallback))
	return Result[T]{Value: fallback(), Source: SourceFallback}
}

// complete calls the model on a context detached from the caller's
// cancellation and bounded by the service timeout.
func (s *Service) complete(ctx context.Context, op string, req llm.Request) (string, error) {
	if !s.Configured() {
		return "", errModelUnavailable
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	start := time.Now()
	text, err := s.LLM.Generate(callCtx, req)
	metrics.ObserveModelDuration(op, time.Since(start))
	if err != nil {
		return "", err
	}
	if err := callCtx.Err(); err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}

func textResult(text string) (string, bool) {
	return text, text != ""
}

func indentResume(resume any) (string, error) {
	var raw []byte
	switch v := resume.(type) {
	case nil:
		return "", errAnalysisInput
	case json.RawMessage:
		raw = v
	case []byte:
		raw = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		raw = b
	}
	raw = bytes.TrimSpace(raw)
	switch string(raw) {
	case "", "null", `""`, "false", "0":
		return "", errAnalysisInput
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}
