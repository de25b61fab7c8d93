package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func anthropicServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s, want /v1/messages", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key = %s", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") != "2023-06-01" {
			t.Errorf("anthropic-version = %s", r.Header.Get("anthropic-version"))
		}

		body := fmt.Sprintf(`{
			"id": "msg_123",
			"type": "message",
			"role": "assistant",
			"content": [{"type": "text", "text": %q}],
			"model": "claude-3-5-sonnet-20241022",
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 50, "output_tokens": 50}
		}`, text)
		_, _ = w.Write([]byte(body))
	}))
}

func TestAnthropicSummarize(t *testing.T) {
	server := anthropicServer(t, "Recent activity centers on r/teaching.")
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{
		APIKey:          "test-key",
		BaseURL:         server.URL,
		Model:           "claude-3-5-sonnet-20241022",
		Timeout:         5,
		StrictCitations: true,
	})
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}

	resp, err := provider.Summarize(context.Background(), SummarizeRequest{
		Record:            promptRecord(),
		AllowedSubreddits: []string{"teaching"},
	})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if resp.Summary != "Recent activity centers on r/teaching." {
		t.Errorf("Summary = %q", resp.Summary)
	}
	if len(resp.CitedSubreddits) != 1 || resp.CitedSubreddits[0] != "teaching" {
		t.Errorf("CitedSubreddits = %v", resp.CitedSubreddits)
	}
	if resp.TokensUsed != 100 {
		t.Errorf("TokensUsed = %d, want 100", resp.TokensUsed)
	}
	if resp.Model != "claude-3-5-sonnet-20241022" {
		t.Errorf("Model = %q", resp.Model)
	}
}

func TestAnthropicSummarizeCitationLeak(t *testing.T) {
	server := anthropicServer(t, "Clearly a regular of r/cooking.")
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{
		APIKey:          "test-key",
		BaseURL:         server.URL,
		Timeout:         5,
		StrictCitations: true,
	})
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}

	_, err = provider.Summarize(context.Background(), SummarizeRequest{
		Record:            promptRecord(),
		AllowedSubreddits: []string{"teaching"},
	})
	if err == nil {
		t.Fatal("expected a citation leak error")
	}
	if !strings.Contains(err.Error(), "CITATION LEAK") {
		t.Errorf("error = %v, want a citation leak", err)
	}
}

func TestAnthropicRequiresKey(t *testing.T) {
	if _, err := NewAnthropicProvider(Config{}); err == nil {
		t.Error("expected an error without an API key")
	}
}

func TestAnthropicSummarizeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "rate_limit_error", "message": "Rate limit exceeded"}}`))
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}

	_, err = provider.Summarize(context.Background(), SummarizeRequest{Record: promptRecord()})
	if err == nil {
		t.Fatal("expected an API error")
	}
	if !strings.Contains(err.Error(), "Rate limit exceeded") {
		t.Errorf("error should carry the API message, got %v", err)
	}
}

func TestAnthropicSummarizeMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{malformed json`))
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}

	if _, err := provider.Summarize(context.Background(), SummarizeRequest{Record: promptRecord()}); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestAnthropicIsAvailable(t *testing.T) {
	server := anthropicServer(t, "Hi")
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}

	if !provider.IsAvailable(context.Background()) {
		t.Error("expected the provider to be available")
	}

	server.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if provider.IsAvailable(context.Background()) {
		t.Error("expected the provider to be unavailable on errors")
	}
}
