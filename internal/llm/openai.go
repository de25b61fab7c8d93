package llm

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a careful assistant that summarizes persona reports with strict adherence to citation constraints."

// OpenAIProvider talks to the OpenAI Chat Completions API.
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider requires an API key; the base URL is overridable
// for compatible endpoints.
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns "openai".
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable probes the API with a lightweight model listing.
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	if _, err := p.client.ListModels(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "OpenAI API check failed: %v\n", err)
		return false
	}
	return true
}

// Summarize generates the narrative and enforces the citation
// allowlist on the result.
func (p *OpenAIProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	prompt := req.Prompt
	if prompt == "" {
		prompt = BuildPrompt(req.Record, req.AllowedSubreddits)
	}

	model := req.Model
	if model == "" {
		model = p.config.Model
	}
	if model == "" {
		model = openai.GPT4oMini
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 1000
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)

	cited, err := verifyCitations(summary, req.AllowedSubreddits, p.config.StrictCitations)
	if err != nil {
		return nil, err
	}

	return &SummarizeResponse{
		Summary:         summary,
		CitedSubreddits: cited,
		Model:           model,
		TokensUsed:      resp.Usage.TotalTokens,
	}, nil
}

// subredditPattern matches r/name mentions in generated text.
var subredditPattern = regexp.MustCompile(`\br/([A-Za-z0-9_]+)`)

// extractSubreddits lists the distinct communities a text mentions, in
// first-seen order.
func extractSubreddits(text string) []string {
	matches := subredditPattern.FindAllStringSubmatch(text, -1)

	seen := make(map[string]bool)
	var unique []string
	for _, m := range matches {
		name := m[1]
		key := strings.ToLower(name)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, name)
		}
	}
	return unique
}

// verifyCitations extracts the communities mentioned by the summary
// and, in strict mode, rejects any mention outside the allowlist.
func verifyCitations(summary string, allowed []string, strict bool) ([]string, error) {
	cited := extractSubreddits(summary)
	if strict {
		for _, sub := range cited {
			if !containsFold(allowed, sub) {
				return nil, fmt.Errorf("CITATION LEAK: summary cited a subreddit outside the allowlist: r/%s", sub)
			}
		}
	}
	return cited, nil
}

// containsFold reports whether slice holds item, ignoring case.
// Subreddit names compare case-insensitively.
func containsFold(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
