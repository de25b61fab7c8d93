package model

import (
	"strings"
	"time"
)

// NotSpecified is the default for every personal attribute that no
// fragment resolved.
const NotSpecified = "Not specified"

// SentinelCitation marks a claim that carries no source because the
// category produced no matches.
const SentinelCitation = "N/A"

// Claim is one extracted statement about the account, paired with the
// activity item it was lifted from.
type Claim struct {
	Text     string `json:"text"`
	Citation string `json:"citation"`
}

// Sentinel reports whether the claim is a category's "no data" filler
// rather than an extracted statement.
func (c Claim) Sentinel() bool {
	return c.Citation == SentinelCitation
}

// PersonalInfo holds the four independently resolved profile attributes.
// Each defaults to NotSpecified.
type PersonalInfo struct {
	Age                string `json:"age"`
	Location           string `json:"location"`
	Occupation         string `json:"occupation"`
	RelationshipStatus string `json:"relationship_status"`
}

// NewPersonalInfo returns a fully defaulted PersonalInfo.
func NewPersonalInfo() PersonalInfo {
	return PersonalInfo{
		Age:                NotSpecified,
		Location:           NotSpecified,
		Occupation:         NotSpecified,
		RelationshipStatus: NotSpecified,
	}
}

// SubredditCount is one row of the activity frequency table.
type SubredditCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// WordCount is one row of the top-words table built from normalized text.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// SignalSeverity grades a coverage signal.
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)

// Signal is one diagnostic observation about how complete the persona is.
type Signal struct {
	Type        string         `json:"type"`
	Severity    SignalSeverity `json:"severity"`
	Description string         `json:"description"`
}

// Coverage reports how much of the persona the corpus actually supported.
// It never influences extraction; it only annotates the result.
type Coverage struct {
	Index      int      `json:"index"` // 0-100
	Confidence string   `json:"confidence"`
	Signals    []Signal `json:"signals,omitempty"`
}

// LLMSummary captures the optional model-written narrative. Extraction
// results never depend on it.
type LLMSummary struct {
	Enabled         bool     `json:"enabled"`
	Provider        string   `json:"provider,omitempty"`
	Model           string   `json:"model,omitempty"`
	StrictCitations bool     `json:"strict_citations"`
	SummaryMD       string   `json:"summary_md,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
}

// PersonaRecord is the finished persona. It is assembled once by the
// analyzer and treated as read-only by every sink.
type PersonaRecord struct {
	Username    string    `json:"username"`
	GeneratedAt time.Time `json:"generated_at"`

	PersonalInfo PersonalInfo `json:"personal_info"`

	Archetype      string  `json:"archetype"`
	Personality    string  `json:"personality"`
	SentimentScore float64 `json:"sentiment_score"`
	SentimentLabel string  `json:"sentiment_label"`

	Motivations  []Claim `json:"motivations"`
	Goals        []Claim `json:"goals"`
	Behaviors    []Claim `json:"behaviors"`
	Frustrations []Claim `json:"frustrations"`

	ActivityLevel string           `json:"activity_level"`
	TotalComments int              `json:"total_comments"`
	TotalPosts    int              `json:"total_posts"`
	TopSubreddits []SubredditCount `json:"top_subreddits,omitempty"`
	TopWords      []WordCount      `json:"top_words,omitempty"`

	Coverage Coverage    `json:"coverage"`
	LLM      *LLMSummary `json:"llm_summary,omitempty"`
}

// ClaimGroups returns the four narrative categories in presentation
// order with their report headings.
func (r *PersonaRecord) ClaimGroups() []ClaimGroup {
	return []ClaimGroup{
		{Heading: "Motivations", Claims: r.Motivations},
		{Heading: "Goals & Needs", Claims: r.Goals},
		{Heading: "Behaviors & Habits", Claims: r.Behaviors},
		{Heading: "Frustrations", Claims: r.Frustrations},
	}
}

// ClaimGroup pairs a report heading with its claims.
type ClaimGroup struct {
	Heading string
	Claims  []Claim
}

// CitedSubreddits returns the distinct subreddits referenced by the
// record's non-sentinel claims, in first-seen order. The LLM layer uses
// this as its citation allowlist.
func (r *PersonaRecord) CitedSubreddits() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(claims []Claim) {
		for _, c := range claims {
			if c.Sentinel() {
				continue
			}
			sub := citationSubreddit(c.Citation)
			if sub == "" || seen[sub] {
				continue
			}
			seen[sub] = true
			out = append(out, sub)
		}
	}
	add(r.Motivations)
	add(r.Goals)
	add(r.Behaviors)
	add(r.Frustrations)
	return out
}

func citationSubreddit(citation string) string {
	const marker = "r/"
	idx := strings.LastIndex(citation, marker)
	if idx < 0 {
		return ""
	}
	return citation[idx+len(marker):]
}
