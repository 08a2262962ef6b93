package llm

import (
	"context"
	"errors"
	"strings"
)

// Client abstracts LLM providers for text generation.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Request is a single-turn completion request.
type Request struct {
	// System carries the role instruction, sent separately when the provider supports it.
	System string
	Prompt string
	// JSON asks the provider for a JSON response where supported.
	JSON bool
	// MaxTokens caps the reply length; zero leaves the provider default.
	MaxTokens int
}

// ErrEmptyResponse is returned when the provider answered without usable text.
var ErrEmptyResponse = errors.New("llm returned empty response")

// StripCodeFences removes a surrounding markdown code fence, if any.
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		// drop an info string such as "json"
		if !strings.ContainsAny(text[:nl], "{[") {
			text = text[nl+1:]
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
