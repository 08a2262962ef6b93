package content

import (
	"bytes"
	"encoding/json"
	"strings"
)

// SummaryRequest is the body of POST /ai/generate-summary.
type SummaryRequest struct {
	Name       string          `json:"name"`
	Experience json.RawMessage `json:"experience"`
	Skills     StringList      `json:"skills"`
	TargetRole string          `json:"targetRole"`
}

func (r SummaryRequest) input() SummaryInput {
	return SummaryInput{
		Name:       r.Name,
		Experience: freeText(r.Experience),
		Skills:     r.Skills,
		TargetRole: r.TargetRole,
	}
}

// DescriptionRequest is the body of POST /ai/improve-description.
type DescriptionRequest struct {
	Description string `json:"description"`
	Position    string `json:"position"`
	Company     string `json:"company"`
}

func (r DescriptionRequest) input() DescriptionInput {
	return DescriptionInput(r)
}

// SkillsRequest is the body of POST /ai/suggest-skills.
type SkillsRequest struct {
	TargetRole    string          `json:"targetRole"`
	CurrentSkills StringList      `json:"currentSkills"`
	Experience    json.RawMessage `json:"experience"`
}

func (r SkillsRequest) input() SkillsInput {
	return SkillsInput{
		TargetRole:    r.TargetRole,
		CurrentSkills: r.CurrentSkills,
		Experience:    freeText(r.Experience),
	}
}

// AnalysisRequest is the body of POST /ai/analyze-resume.
type AnalysisRequest struct {
	ResumeData json.RawMessage `json:"resumeData"`
}

// freeText accepts a JSON string as-is and any other JSON value in compact form.
func freeText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
