package content

import (
	"embed"
	"fmt"
	"strings"

	"resume-builder/internal/llm"
)

//go:embed prompts/*.txt
var promptFiles embed.FS

type promptTemplate struct {
	system    string
	body      string
	maxTokens int
}

var (
	summaryPrompt     = mustLoadPrompt("summary", 300)
	descriptionPrompt = mustLoadPrompt("improve", 400)
	skillsPrompt      = mustLoadPrompt("skills", 200)
	analysisPrompt    = mustLoadPrompt("analyze", 800)
)

func mustLoadPrompt(name string, maxTokens int) promptTemplate {
	system, err := promptFiles.ReadFile("prompts/" + name + ".system.txt")
	if err != nil {
		panic(fmt.Sprintf("load %s system prompt: %v", name, err))
	}
	body, err := promptFiles.ReadFile("prompts/" + name + ".txt")
	if err != nil {
		panic(fmt.Sprintf("load %s prompt: %v", name, err))
	}
	return promptTemplate{
		system:    strings.TrimSpace(string(system)),
		body:      strings.TrimSpace(string(body)),
		maxTokens: maxTokens,
	}
}

// render fills {{KEY}} placeholders in one pass, so values are never re-expanded.
func (p promptTemplate) render(wantJSON bool, pairs ...string) llm.Request {
	return llm.Request{
		System:    p.system,
		Prompt:    strings.NewReplacer(pairs...).Replace(p.body),
		JSON:      wantJSON,
		MaxTokens: p.maxTokens,
	}
}

func buildSummaryRequest(in SummaryInput) llm.Request {
	return summaryPrompt.render(false,
		"{{NAME}}", in.Name,
		"{{TARGET_ROLE}}", in.TargetRole,
		"{{EXPERIENCE}}", orDefault(in.Experience, "various roles"),
		"{{SKILLS}}", orDefault(strings.Join(in.Skills, ", "), "various technical skills"),
	)
}

func buildDescriptionRequest(in DescriptionInput) llm.Request {
	atCompany := ""
	if in.Company != "" {
		atCompany = " at " + in.Company
	}
	return descriptionPrompt.render(false,
		"{{POSITION}}", orDefault(in.Position, "professional"),
		"{{AT_COMPANY}}", atCompany,
		"{{DESCRIPTION}}", in.Description,
	)
}

func buildSkillsRequest(in SkillsInput) llm.Request {
	return skillsPrompt.render(false,
		"{{TARGET_ROLE}}", in.TargetRole,
		"{{CURRENT_SKILLS}}", orDefault(strings.Join(in.CurrentSkills, ", "), "None listed"),
		"{{EXPERIENCE}}", orDefault(in.Experience, "Mid-level"),
	)
}

func buildAnalysisRequest(resumeJSON string) llm.Request {
	return analysisPrompt.render(true, "{{RESUME_JSON}}", resumeJSON)
}

func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
