package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func ollamaServer(t *testing.T, text string, promptTokens, evalTokens int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %s, want /api/generate", r.URL.Path)
		}

		body := fmt.Sprintf(`{
			"model": "llama3.1:8b",
			"created_at": "2026-01-01T00:00:00Z",
			"response": %q,
			"done": true,
			"prompt_eval_count": %d,
			"eval_count": %d
		}`, text, promptTokens, evalTokens)
		_, _ = w.Write([]byte(body))
	}))
}

func TestOllamaSummarize(t *testing.T) {
	server := ollamaServer(t, "The account mostly answers questions in r/teaching.", 80, 20)
	defer server.Close()

	provider, err := NewOllamaProvider(Config{
		BaseURL:         server.URL,
		Model:           "llama3.1:8b",
		Timeout:         5,
		StrictCitations: true,
	})
	if err != nil {
		t.Fatalf("NewOllamaProvider: %v", err)
	}

	resp, err := provider.Summarize(context.Background(), SummarizeRequest{
		Record:            promptRecord(),
		AllowedSubreddits: []string{"teaching"},
	})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if resp.Summary != "The account mostly answers questions in r/teaching." {
		t.Errorf("Summary = %q", resp.Summary)
	}
	if len(resp.CitedSubreddits) != 1 || resp.CitedSubreddits[0] != "teaching" {
		t.Errorf("CitedSubreddits = %v", resp.CitedSubreddits)
	}
	if resp.TokensUsed != 100 {
		t.Errorf("TokensUsed = %d, want 100", resp.TokensUsed)
	}
	if resp.Model != "llama3.1:8b" {
		t.Errorf("Model = %q", resp.Model)
	}
}

func TestOllamaRequiresModel(t *testing.T) {
	provider, err := NewOllamaProvider(Config{BaseURL: "http://localhost:11434", Timeout: 5})
	if err != nil {
		t.Fatalf("NewOllamaProvider: %v", err)
	}

	_, err = provider.Summarize(context.Background(), SummarizeRequest{Record: promptRecord()})
	if err == nil {
		t.Fatal("expected an error without a model name")
	}
	if !strings.Contains(err.Error(), "model must be specified") {
		t.Errorf("error = %v", err)
	}
}

func TestOllamaSummarizeCitationLeak(t *testing.T) {
	server := ollamaServer(t, "A regular of r/cooking, it seems.", 80, 20)
	defer server.Close()

	provider, err := NewOllamaProvider(Config{
		BaseURL:         server.URL,
		Model:           "llama3.1:8b",
		Timeout:         5,
		StrictCitations: true,
	})
	if err != nil {
		t.Fatalf("NewOllamaProvider: %v", err)
	}

	_, err = provider.Summarize(context.Background(), SummarizeRequest{
		Record:            promptRecord(),
		AllowedSubreddits: []string{"teaching"},
	})
	if err == nil {
		t.Fatal("expected a citation leak error")
	}
	if !strings.Contains(err.Error(), "r/cooking") {
		t.Errorf("error should name the leaked subreddit, got %v", err)
	}
}

func TestOllamaEstimatesMissingTokenCounts(t *testing.T) {
	server := ollamaServer(t, "Short summary without counts.", 0, 0)
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "mistral", Timeout: 5})
	if err != nil {
		t.Fatalf("NewOllamaProvider: %v", err)
	}

	resp, err := provider.Summarize(context.Background(), SummarizeRequest{Record: promptRecord()})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if resp.TokensUsed <= 0 {
		t.Errorf("TokensUsed = %d, want an estimate above zero", resp.TokensUsed)
	}
}

func TestOllamaSummarizeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "model 'nope' not found"}`))
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "nope", Timeout: 5})
	if err != nil {
		t.Fatalf("NewOllamaProvider: %v", err)
	}

	_, err = provider.Summarize(context.Background(), SummarizeRequest{Record: promptRecord()})
	if err == nil {
		t.Fatal("expected an API error")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error should carry the API message, got %v", err)
	}
}

func TestOllamaSummarizeMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{malformed json`))
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama3.1:8b", Timeout: 5})
	if err != nil {
		t.Fatalf("NewOllamaProvider: %v", err)
	}

	_, err = provider.Summarize(context.Background(), SummarizeRequest{Record: promptRecord()})
	if err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestOllamaIsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			_, _ = w.Write([]byte(`{"models": [{"name": "llama3.1:8b"}]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("NewOllamaProvider: %v", err)
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
