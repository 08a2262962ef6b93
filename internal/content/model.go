package content

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Source tells whether a result came from the model or from static fallback content.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Result is a generated value tagged with its source.
type Result[T any] struct {
	Value  T
	Source Source
}

// SummaryInput drives GenerateSummary.
type SummaryInput struct {
	Name       string
	Experience string
	Skills     []string
	TargetRole string
}

// DescriptionInput drives ImproveDescription.
type DescriptionInput struct {
	Description string
	Position    string
	Company     string
}

// SkillsInput drives SuggestSkills.
type SkillsInput struct {
	TargetRole    string
	CurrentSkills []string
	Experience    string
}

// Analysis is the score and suggestions returned by AnalyzeResume.
type Analysis struct {
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
}

// StringList decodes either a JSON array of strings or a single comma-separated string.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*l = splitList(raw)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	*l = out
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
