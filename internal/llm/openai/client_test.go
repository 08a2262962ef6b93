package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"resume-builder/internal/llm"
)

func newTestClient(t *testing.T, model string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient("sk-test", model, time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.endpoint = server.URL
	return client
}

func TestGenerateSendsSystemAndUserMessages(t *testing.T) {
	var mu sync.Mutex
	var got map[string]any
	client := newTestClient(t, "gpt-4o-mini", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("missing bearer header")
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		mu.Lock()
		got = payload
		mu.Unlock()
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Seasoned engineer.  "}}]}`))
	})

	text, err := client.Generate(context.Background(), llm.Request{System: "be brief", Prompt: "write a summary", JSON: true, MaxTokens: 300})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "Seasoned engineer." {
		t.Fatalf("unexpected text %q", text)
	}

	mu.Lock()
	defer mu.Unlock()
	messages, _ := got["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	first, _ := messages[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "be brief" {
		t.Fatalf("unexpected system message: %v", first)
	}
	if _, ok := got["temperature"]; !ok {
		t.Fatalf("expected temperature for gpt-4o-mini")
	}
	if got["max_tokens"] != float64(300) {
		t.Fatalf("expected max_tokens 300, got %v", got["max_tokens"])
	}
	format, _ := got["response_format"].(map[string]any)
	if format["type"] != "json_object" {
		t.Fatalf("expected json_object response format, got %v", got["response_format"])
	}
}

func TestGenerateOmitsTemperatureForGPT5(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, "gpt-5-mini", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})

	if _, err := client.Generate(context.Background(), llm.Request{Prompt: "hi"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, ok := got["temperature"]; ok {
		t.Fatalf("expected no temperature for gpt-5 models")
	}
	if _, ok := got["response_format"]; ok {
		t.Fatalf("expected no response_format for plain text requests")
	}
	if _, ok := got["max_tokens"]; ok {
		t.Fatalf("expected max_completion_tokens instead of max_tokens")
	}
	if got["max_completion_tokens"] != float64(defaultMaxTokens) {
		t.Fatalf("expected default completion limit, got %v", got["max_completion_tokens"])
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantEmpty bool
		wantAPI   int
	}{
		{name: "api error", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key","type":"invalid_request_error"}}`, wantAPI: http.StatusUnauthorized},
		{name: "non json 500", status: http.StatusInternalServerError, body: `upstream down`, wantAPI: http.StatusInternalServerError},
		{name: "non json 200", status: http.StatusOK, body: `<html>`},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantEmpty: true},
		{name: "blank content", status: http.StatusOK, body: `{"choices":[{"message":{"content":"  "}}]}`, wantEmpty: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := client.Generate(context.Background(), llm.Request{Prompt: "hi"})
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.wantEmpty && !errors.Is(err, llm.ErrEmptyResponse) {
				t.Fatalf("expected ErrEmptyResponse, got %v", err)
			}
			var apiErr *APIError
			if errors.As(err, &apiErr) != (tt.wantAPI != 0) {
				t.Fatalf("APIError mismatch: %v", err)
			}
			if tt.wantAPI != 0 && apiErr.StatusCode != tt.wantAPI {
				t.Fatalf("status = %d, want %d", apiErr.StatusCode, tt.wantAPI)
			}
		})
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("", "gpt-4o-mini", 0); err == nil {
		t.Fatalf("expected error without api key")
	}
}

func TestIsGPT5(t *testing.T) {
	tests := []struct {
		model string
		want  bool
	}{
		{model: "gpt-5", want: true},
		{model: "gpt-5-mini", want: true},
		{model: " GPT-5o ", want: true},
		{model: "gpt-4o", want: false},
		{model: "", want: false},
	}
	for _, tt := range tests {
		if got := isGPT5(tt.model); got != tt.want {
			t.Fatalf("isGPT5(%q) = %v, want %v", tt.model, got, tt.want)
		}
	}
}
