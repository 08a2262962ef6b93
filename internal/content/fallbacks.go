package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed fallbacks.json
var fallbackData []byte

// fallbackTable is the static content served when the model is absent or fails.
type fallbackTable struct {
	Summary            string              `json:"summary"`
	DescriptionBullets []string            `json:"descriptionBullets"`
	Skills             map[string][]string `json:"skills"`
	DefaultSkills      []string            `json:"defaultSkills"`
	Analysis           Analysis            `json:"analysis"`
	UnstructuredScore  int                 `json:"unstructuredScore"`
}

var fallbacks = mustLoadFallbacks(fallbackData)

func mustLoadFallbacks(data []byte) fallbackTable {
	var t fallbackTable
	if err := json.Unmarshal(data, &t); err != nil {
		panic(fmt.Sprintf("load fallbacks: %v", err))
	}
	if t.Summary == "" || len(t.DescriptionBullets) == 0 || len(t.DefaultSkills) == 0 || len(t.Analysis.Suggestions) == 0 {
		panic("load fallbacks: incomplete table")
	}
	return t
}

func (t fallbackTable) summary(targetRole string) string {
	return strings.ReplaceAll(t.Summary, "{{TARGET_ROLE}}", targetRole)
}

func (t fallbackTable) description(original string) string {
	lines := make([]string, 0, len(t.DescriptionBullets)+1)
	lines = append(lines, "• "+original)
	for _, b := range t.DescriptionBullets {
		lines = append(lines, "• "+b)
	}
	return strings.Join(lines, "\n")
}

// skills matches the role case-insensitively and returns a copy of the list.
func (t fallbackTable) skills(targetRole string) []string {
	role := strings.TrimSpace(targetRole)
	for key, list := range t.Skills {
		if strings.EqualFold(key, role) {
			return append([]string(nil), list...)
		}
	}
	return append([]string(nil), t.DefaultSkills...)
}

func (t fallbackTable) analysis() Analysis {
	return Analysis{
		Score:       t.Analysis.Score,
		Suggestions: append([]string(nil), t.Analysis.Suggestions...),
	}
}
