package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-builder/internal/llm"
)

const (
	DefaultModel     = "gpt-4o-mini"
	defaultEndpoint  = "https://api.openai.com/v1/chat/completions"
	defaultMaxTokens = 1000
	temperature      = 0.7
	// maxErrorBody bounds how much of a non-JSON error body ends up in logs.
	maxErrorBody = 512
)

// Client implements llm.Client over the Chat Completions HTTP API.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	http     *http.Client
}

// NewClient builds a client. timeout bounds each HTTP round trip.
func NewClient(apiKey, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:   apiKey,
		model:    model,
		endpoint: defaultEndpoint,
		http:     &http.Client{Timeout: timeout},
	}, nil
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("openai status %d: %s (%s)", e.StatusCode, e.Message, e.Type)
	}
	return fmt.Sprintf("openai status %d: %s", e.StatusCode, e.Message)
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model               string          `json:"model"`
	Messages            []message       `json:"messages"`
	Temperature         *float32        `json:"temperature,omitempty"`
	MaxTokens           int             `json:"max_tokens,omitempty"`
	MaxCompletionTokens int             `json:"max_completion_tokens,omitempty"`
	ResponseFormat      *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate returns the first choice's trimmed text.
func (c *Client) Generate(ctx context.Context, in llm.Request) (string, error) {
	payload, err := json.Marshal(c.body(in))
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai read body: %w", err)
	}
	return decode(resp.StatusCode, raw)
}

// body picks token and temperature fields by model family: gpt-5 models
// reject temperature and take max_completion_tokens.
func (c *Client) body(in llm.Request) completionRequest {
	msgs := make([]message, 0, 2)
	if s := strings.TrimSpace(in.System); s != "" {
		msgs = append(msgs, message{Role: "system", Content: s})
	}
	msgs = append(msgs, message{Role: "user", Content: in.Prompt})

	limit := in.MaxTokens
	if limit <= 0 {
		limit = defaultMaxTokens
	}
	out := completionRequest{Model: c.model, Messages: msgs}
	if isGPT5(c.model) {
		out.MaxCompletionTokens = limit
	} else {
		t := float32(temperature)
		out.Temperature = &t
		out.MaxTokens = limit
	}
	if in.JSON {
		out.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	return out
}

func decode(status int, raw []byte) (string, error) {
	var parsed completionResponse
	jsonErr := json.Unmarshal(raw, &parsed)
	if status >= 400 || (jsonErr == nil && parsed.Error != nil) {
		apiErr := &APIError{StatusCode: status, Message: truncate(strings.TrimSpace(string(raw)), maxErrorBody)}
		if jsonErr == nil && parsed.Error != nil {
			apiErr.Message, apiErr.Type = parsed.Error.Message, parsed.Error.Type
		}
		return "", apiErr
	}
	if jsonErr != nil {
		return "", fmt.Errorf("openai response parse: %w", jsonErr)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices: %w", llm.ErrEmptyResponse)
	}
	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("openai: blank content: %w", llm.ErrEmptyResponse)
	}
	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

func isGPT5(model string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(model)), "gpt-5")
}
