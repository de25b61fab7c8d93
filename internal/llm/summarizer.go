package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/personarium/personarium/internal/model"
)

// Summarizer owns the optional narrative step. With no provider
// configured it is inert; with one configured it degrades to warnings
// instead of failing the analysis.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer builds a summarizer from config. An empty provider name
// yields a disabled summarizer, not an error.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the configured provider's name, or "" when
// disabled.
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary narrates the record. It never fails the analysis:
// disabled returns (nil, nil), an unavailable provider or a generation
// error returns a summary block carrying warnings.
func (s *Summarizer) GenerateSummary(ctx context.Context, rec model.PersonaRecord) (*model.LLMSummary, error) {
	if s.provider == nil {
		return nil, nil
	}

	summary := &model.LLMSummary{
		Provider:        s.provider.Name(),
		Model:           s.config.Model,
		StrictCitations: s.config.StrictCitations,
	}

	if !s.provider.IsAvailable(ctx) {
		summary.Enabled = false
		summary.Warnings = append(summary.Warnings,
			fmt.Sprintf("LLM provider %s is not available; summary skipped", s.provider.Name()))
		return summary, nil
	}

	summary.Enabled = true

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Record:            rec,
		AllowedSubreddits: rec.CitedSubreddits(),
		Model:             s.config.Model,
		MaxTokens:         s.config.MaxTokens,
	})
	if err != nil {
		summary.Warnings = append(summary.Warnings,
			fmt.Sprintf("LLM summary generation failed: %v", err))
		return summary, nil
	}

	summary.SummaryMD = resp.Summary
	if resp.Model != "" {
		summary.Model = resp.Model
	}
	summary.Warnings = append(summary.Warnings,
		fmt.Sprintf("Tokens used: %d", resp.TokensUsed))
	summary.Warnings = append(summary.Warnings,
		fmt.Sprintf("Verified %d citations against the allowlist", len(resp.CitedSubreddits)))

	return summary, nil
}

// RenderSeparateMarkdown renders the summary block for its own file,
// clearly fenced off from the heuristic report. Nil or disabled
// summaries render to "".
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	if summary == nil || !summary.Enabled {
		return ""
	}

	var b strings.Builder
	b.WriteString("# LLM Summary\n\n")
	b.WriteString("> **GENERATED CONTENT.** The narrative below was written by a language\n")
	b.WriteString("> model. Every persona field was determined independently by the\n")
	b.WriteString("> extraction rules and does not depend on this text.\n\n")
	fmt.Fprintf(&b, "- Provider: %s\n", summary.Provider)
	fmt.Fprintf(&b, "- Model: %s\n", summary.Model)
	fmt.Fprintf(&b, "- Strict Citations: %t\n\n", summary.StrictCitations)

	if summary.SummaryMD == "" {
		b.WriteString("No summary generated.\n")
	} else {
		b.WriteString(summary.SummaryMD)
		b.WriteString("\n")
	}

	if len(summary.Warnings) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, warning := range summary.Warnings {
			fmt.Fprintf(&b, "- %s\n", warning)
		}
	}

	return b.String()
}
