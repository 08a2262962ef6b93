package content

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"resume-builder/internal/llm"
)

// jsonObjectPattern is greedy: first "{" through last "}".
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// parseSkills splits a comma-separated model answer.
func parseSkills(text string) []string {
	return splitList(llm.StripCodeFences(text))
}

// parseAnalysis never fails: it tries the embedded JSON object, then the whole
// text, then treats brace-free lines as suggestions. The bool reports whether
// the model output contributed anything usable. A valid JSON object with no
// usable score or suggestion yields the static analysis.
func parseAnalysis(text string) (Analysis, bool) {
	text = strings.TrimSpace(text)
	candidates := []string{jsonObjectPattern.FindString(text), llm.StripCodeFences(text)}
	for _, raw := range candidates {
		fields, isObject := decodeObject(raw)
		if !isObject {
			continue
		}
		if a, ok := analysisFromFields(fields); ok {
			return a, true
		}
		return fallbacks.analysis(), false
	}

	lines := unstructuredSuggestions(text)
	if len(lines) == 0 {
		return fallbacks.analysis(), false
	}
	return Analysis{Score: fallbacks.UnstructuredScore, Suggestions: lines}, true
}

func decodeObject(raw string) (map[string]json.RawMessage, bool) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "{") {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, false
	}
	return fields, true
}

// analysisFromFields reads score and suggestions independently so one
// malformed field does not discard the other.
func analysisFromFields(fields map[string]json.RawMessage) (Analysis, bool) {
	score, hasScore := decodeScore(fields["score"])
	suggestions := decodeSuggestions(fields["suggestions"])
	if !hasScore && len(suggestions) == 0 {
		return Analysis{}, false
	}

	out := Analysis{Score: fallbacks.UnstructuredScore, Suggestions: suggestions}
	if hasScore {
		out.Score = clampScore(score)
	}
	if len(out.Suggestions) == 0 {
		out.Suggestions = fallbacks.analysis().Suggestions
	}
	return out, true
}

// decodeScore accepts a JSON number or a numeric string such as "85".
func decodeScore(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		v, err := num.Float64()
		return v, err == nil && !math.IsNaN(v) && !math.IsInf(v, 0)
	}
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// decodeSuggestions keeps the non-blank strings of a JSON array.
func decodeSuggestions(raw json.RawMessage) []string {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	var out []string
	for _, item := range items {
		var str string
		if json.Unmarshal(item, &str) != nil {
			continue
		}
		if trimmed := strings.TrimSpace(str); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func unstructuredSuggestions(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.ContainsAny(line, "{}") || strings.HasPrefix(line, "```") {
			continue
		}
		out = append(out, line)
	}
	return out
}

func clampScore(v float64) int {
	if math.IsNaN(v) {
		return fallbacks.UnstructuredScore
	}
	v = math.Round(v)
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(v)
	}
}
