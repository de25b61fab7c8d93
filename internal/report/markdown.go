package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/personarium/personarium/internal/model"
)

// RenderMarkdown writes the persona card as a markdown document and
// returns the path written.
func (r *Renderer) RenderMarkdown(rec *model.PersonaRecord) (string, error) {
	path, err := r.filePath(rec, "md")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Persona: u/%s\n\n", rec.Username)
	fmt.Fprintf(&b, "_Generated %s_\n\n", rec.GeneratedAt.Format("2006-01-02 15:04 UTC"))

	b.WriteString("## Basic Information\n\n")
	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Age | %s |\n", rec.PersonalInfo.Age)
	fmt.Fprintf(&b, "| Location | %s |\n", rec.PersonalInfo.Location)
	fmt.Fprintf(&b, "| Occupation | %s |\n", rec.PersonalInfo.Occupation)
	fmt.Fprintf(&b, "| Relationship Status | %s |\n\n", rec.PersonalInfo.RelationshipStatus)

	b.WriteString("## Personality & Archetype\n\n")
	fmt.Fprintf(&b, "- **Archetype:** %s\n", rec.Archetype)
	fmt.Fprintf(&b, "- **Personality:** %s\n", rec.Personality)
	fmt.Fprintf(&b, "- **Overall sentiment:** %s\n\n", sentimentLine(rec))

	for _, group := range rec.ClaimGroups() {
		fmt.Fprintf(&b, "## %s\n\n", group.Heading)
		for i, c := range group.Claims {
			fmt.Fprintf(&b, "%d. %s\n", i+1, c.Text)
			if !c.Sentinel() {
				fmt.Fprintf(&b, "   - Source: %s\n", c.Citation)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Activity Summary\n\n")
	fmt.Fprintf(&b, "- **Activity level:** %s\n", rec.ActivityLevel)
	fmt.Fprintf(&b, "- **Total comments:** %d\n", rec.TotalComments)
	fmt.Fprintf(&b, "- **Total posts:** %d\n\n", rec.TotalPosts)

	if len(rec.TopSubreddits) > 0 {
		b.WriteString("## Most Active Communities\n\n")
		b.WriteString("| # | Community | Interactions |\n|---|---|---|\n")
		for i, sub := range rec.TopSubreddits {
			fmt.Fprintf(&b, "| %d | r/%s | %d |\n", i+1, sub.Name, sub.Count)
		}
		b.WriteString("\n")
	}

	if len(rec.TopWords) > 0 {
		b.WriteString("## Common Words\n\n")
		words := make([]string, 0, len(rec.TopWords))
		for _, wc := range rec.TopWords {
			words = append(words, fmt.Sprintf("%s (%d)", wc.Word, wc.Count))
		}
		b.WriteString(strings.Join(words, ", "))
		b.WriteString("\n\n")
	}

	b.WriteString("## Coverage\n\n")
	fmt.Fprintf(&b, "- **Index:** %d/100 (%s confidence)\n", rec.Coverage.Index, rec.Coverage.Confidence)
	for _, sig := range rec.Coverage.Signals {
		fmt.Fprintf(&b, "- %s: %s\n", sig.Severity, sig.Description)
	}

	if r.includeFooter {
		b.WriteString("\n---\n\n")
		b.WriteString("Built with [personarium](https://github.com/personarium/personarium). " +
			"Fields are heuristic readings of public activity, not verified facts.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write markdown: %w", err)
	}
	return path, nil
}

// RenderLLMMarkdown writes pre-rendered summary markdown next to the
// persona report. The summary lives in its own file so the heuristic
// report never mixes with generated prose.
func (r *Renderer) RenderLLMMarkdown(content, path string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write LLM markdown: %w", err)
	}
	return nil
}
