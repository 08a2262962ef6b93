package main

// Run one content operation against the configured model:
//   go run ./cmd/prompttest -op summary -name Ada -role "Data Analyst"
//   go run ./cmd/prompttest -op analyze -resume testdata/resume.json

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"resume-builder/internal/content"
	"resume-builder/internal/llm"
	"resume-builder/internal/llm/gemini"
	"resume-builder/internal/llm/openai"
	"resume-builder/internal/shared/config"
)

func main() {
	cfg := config.Load()

	op := flag.String("op", "summary", "operation: summary, improve, skills, analyze")
	name := flag.String("name", "", "candidate name (summary)")
	role := flag.String("role", "", "target role (summary, skills)")
	experience := flag.String("experience", "", "experience text (summary, skills)")
	skills := flag.String("skills", "", "comma-separated skills (summary, skills)")
	description := flag.String("description", "", "job description (improve)")
	position := flag.String("position", "", "position (improve)")
	company := flag.String("company", "", "company (improve)")
	resumePath := flag.String("resume", "", "path to resume JSON (analyze)")
	provider := flag.String("provider", cfg.LLMProvider, "LLM provider: gemini, openai, none")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	flag.Parse()

	client, err := buildClient(cfg, *provider, *model)
	if err != nil {
		exitErr(err.Error())
	}
	svc := content.NewService(client, cfg.AITimeout)
	ctx := context.Background()

	var (
		value  any
		source content.Source
	)
	switch strings.TrimSpace(*op) {
	case "summary":
		res, err := svc.GenerateSummary(ctx, content.SummaryInput{
			Name:       *name,
			Experience: *experience,
			Skills:     splitFlag(*skills),
			TargetRole: *role,
		})
		if err != nil {
			exitErr(err.Error())
		}
		value, source = res.Value, res.Source
	case "improve":
		res, err := svc.ImproveDescription(ctx, content.DescriptionInput{
			Description: *description,
			Position:    *position,
			Company:     *company,
		})
		if err != nil {
			exitErr(err.Error())
		}
		value, source = res.Value, res.Source
	case "skills":
		res, err := svc.SuggestSkills(ctx, content.SkillsInput{
			TargetRole:    *role,
			CurrentSkills: splitFlag(*skills),
			Experience:    *experience,
		})
		if err != nil {
			exitErr(err.Error())
		}
		value, source = res.Value, res.Source
	case "analyze":
		if strings.TrimSpace(*resumePath) == "" {
			exitErr("resume path is required")
		}
		raw, err := os.ReadFile(*resumePath)
		if err != nil {
			exitErr(fmt.Sprintf("read resume: %v", err))
		}
		res, err := svc.AnalyzeResume(ctx, json.RawMessage(raw))
		if err != nil {
			exitErr(err.Error())
		}
		value, source = res.Value, res.Source
	default:
		exitErr(fmt.Sprintf("unknown op %q", *op))
	}

	out, err := json.MarshalIndent(map[string]any{"source": source, "value": value}, "", "  ")
	if err != nil {
		exitErr(err.Error())
	}
	fmt.Println(string(out))
}

func buildClient(cfg config.Config, provider, model string) (llm.Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case config.ProviderGemini:
		return gemini.NewClient(context.Background(), cfg.GeminiAPIKey, model)
	case config.ProviderOpenAI:
		return openai.NewClient(cfg.OpenAIAPIKey, model, cfg.AITimeout)
	default:
		fmt.Fprintln(os.Stderr, "no provider configured; printing fallback content")
		return nil, nil
	}
}

func splitFlag(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
