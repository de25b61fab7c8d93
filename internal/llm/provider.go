// Package llm adds an optional model-written narrative on top of a
// finished persona record. The extraction pipeline never depends on it:
// a missing key, an unreachable provider or a rejected summary only
// leaves warnings on the record's LLM block.
package llm

import (
	"context"
	"fmt"

	"github.com/personarium/personarium/internal/model"
)

// Provider is one summary backend.
type Provider interface {
	// Name identifies the provider in reports and logs.
	Name() string

	// Summarize writes a short narrative for the record under the
	// citation constraints in the request.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable reports whether the provider is configured and
	// reachable right now.
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest is the input for one summary.
type SummarizeRequest struct {
	// Record is the finished persona to narrate.
	Record model.PersonaRecord

	// AllowedSubreddits is the strict citation allowlist: the
	// subreddits the record's own claims cite. A summary referring to
	// any other community is rejected.
	AllowedSubreddits []string

	// Prompt overrides the default prompt when set.
	Prompt string

	// Model names the provider-specific model.
	Model string

	// MaxTokens bounds the response length.
	MaxTokens int
}

// SummarizeResponse is the provider's output.
type SummarizeResponse struct {
	// Summary is the generated narrative.
	Summary string

	// CitedSubreddits are the communities the narrative mentions,
	// already checked against the allowlist.
	CitedSubreddits []string

	// Model is the model that produced the response.
	Model string

	// TokensUsed tracks consumption for the record's notes.
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama" or "" (disabled).
	Provider string

	// Model name, provider-specific.
	Model string

	// APIKey for openai and anthropic.
	APIKey string

	// BaseURL for custom endpoints, for example a local Ollama.
	BaseURL string

	// Timeout in seconds for one API call.
	Timeout int

	// StrictCitations rejects summaries that mention communities
	// outside the allowlist. Leave it on.
	StrictCitations bool

	// MaxTokens for response generation.
	MaxTokens int

	// Proxy overrides; empty falls back to the environment.
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns the defaults: disabled, strict, 30s timeout.
func DefaultConfig() Config {
	return Config{
		Provider:        "",
		Model:           "",
		Timeout:         30,
		StrictCitations: true,
		MaxTokens:       1000,
	}
}

// BuildPrompt constructs the default prompt. It teaches the model the
// citation allowlist and keeps it describing presented behavior rather
// than asserting identity.
func BuildPrompt(rec model.PersonaRecord, allowedSubreddits []string) string {
	prompt := fmt.Sprintf(`You are summarizing a persona report. The report describes how an account presents itself in public activity - it NEVER asserts who the person really is.

CRITICAL RULES:
1. You MUST ONLY cite subreddits from this allowed list:
%s

2. DO NOT infer, speculate, or bring in communities beyond this list.
3. If the extracted fields are defaults or sparse, say so explicitly.
4. Focus on PRESENTED BEHAVIOR, not identity. Use phrases like:
   - "The account describes itself as..."
   - "Recent activity centers on..."
   - "No explicit statements were found about..."
5. Never write "this person is" - only describe what the activity shows.

Persona Summary:
- Account: u/%s
- Coverage Index: %d/100 (%s confidence)
- Archetype: %s
- Personality: %s
- Overall Sentiment: %s
- Activity: %d comments, %d posts (%s)

Extracted Attributes:
- Age: %s
- Location: %s
- Occupation: %s
- Relationship: %s

Extracted Claims:
`, joinSubreddits(allowedSubreddits), rec.Username,
		rec.Coverage.Index, rec.Coverage.Confidence,
		rec.Archetype, rec.Personality, rec.SentimentLabel,
		rec.TotalComments, rec.TotalPosts, rec.ActivityLevel,
		rec.PersonalInfo.Age, rec.PersonalInfo.Location,
		rec.PersonalInfo.Occupation, rec.PersonalInfo.RelationshipStatus)

	claims := 0
	for _, group := range rec.ClaimGroups() {
		for _, c := range group.Claims {
			if c.Sentinel() {
				continue
			}
			prompt += fmt.Sprintf("- %s: %s (%s)\n", group.Heading, c.Text, c.Citation)
			claims++
		}
	}
	if claims == 0 {
		prompt += "(No explicit claims were extracted)\n"
	}

	prompt += "\nKey Signals:\n"
	for i, signal := range rec.Coverage.Signals {
		if i >= 3 {
			break
		}
		prompt += fmt.Sprintf("- %s: %s\n", signal.Type, signal.Description)
	}

	prompt += "\nProvide a 3-4 sentence summary of how the account presents itself, not who the person is."

	return prompt
}

func joinSubreddits(subreddits []string) string {
	if len(subreddits) == 0 {
		return "(No cited subreddits available)"
	}
	result := ""
	for i, sub := range subreddits {
		if i >= 20 { // keep the prompt small
			result += fmt.Sprintf("\n... and %d more subreddits", len(subreddits)-20)
			break
		}
		result += fmt.Sprintf("\n- r/%s", sub)
	}
	return result
}
