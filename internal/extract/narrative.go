package extract

import (
	"strings"

	"github.com/personarium/personarium/internal/model"
)

// narrativeRule describes one claim category. Matching and snippets run
// on flattened text so claims read uniformly regardless of the source
// item's markup.
type narrativeRule struct {
	triggers   []string
	prefix     string
	snippetLen int
	// splitMarker, when set, starts the snippet after the marker's last
	// occurrence instead of at the beginning of the text.
	splitMarker string
	scanPosts   bool
	sentinel    string
}

var motivationRule = narrativeRule{
	triggers:    []string{"want to", "hope to", "aspire to", "dream of", "goal is"},
	prefix:      "Wants to ",
	snippetLen:  100,
	splitMarker: "want to",
	sentinel:    "No explicit motivations mentioned recently",
}

var goalRule = narrativeRule{
	triggers:    []string{"goal", "objective", "aim", "target"},
	prefix:      "Aims to ",
	snippetLen:  100,
	splitMarker: "goal",
	scanPosts:   true,
	sentinel:    "Not explicitly mentioned in recent activity",
}

var behaviorRule = narrativeRule{
	triggers:   []string{"i always", "i usually", "i often"},
	prefix:     "Habit: ",
	snippetLen: 150,
	sentinel:   "Patterns not clearly identifiable from recent activity",
}

var frustrationRule = narrativeRule{
	triggers:   []string{"frustrat", "annoy", "bother", "problem", "issue"},
	prefix:     "Frustrated by: ",
	snippetLen: 150,
	sentinel:   "No explicit frustrations mentioned recently",
}

// Motivations scans comments for aspiration phrasing.
func (e *Extractor) Motivations(corpus model.Corpus) []model.Claim {
	return e.narrative(corpus, motivationRule)
}

// Goals scans posts for goal phrasing.
func (e *Extractor) Goals(corpus model.Corpus) []model.Claim {
	return e.narrative(corpus, goalRule)
}

// Behaviors scans comments for habitual phrasing.
func (e *Extractor) Behaviors(corpus model.Corpus) []model.Claim {
	return e.narrative(corpus, behaviorRule)
}

// Frustrations scans comments for complaint phrasing.
func (e *Extractor) Frustrations(corpus model.Corpus) []model.Claim {
	return e.narrative(corpus, frustrationRule)
}

func (e *Extractor) narrative(corpus model.Corpus, rule narrativeRule) []model.Claim {
	items := corpus.Comments
	if rule.scanPosts {
		items = corpus.Posts
	}

	var claims []model.Claim
	for _, item := range items {
		flat := e.norm.Flatten(item.Text())
		if flat == "" || !containsAny(flat, rule.triggers) {
			continue
		}

		snippet := flat
		if rule.splitMarker != "" {
			snippet = strings.TrimSpace(afterLast(flat, rule.splitMarker))
		}
		frag := model.Fragment{Subreddit: item.Subreddit, Kind: item.Kind}
		claims = append(claims, model.Claim{
			Text:     rule.prefix + truncateRunes(snippet, rule.snippetLen) + "...",
			Citation: frag.Citation(),
		})
	}

	if len(claims) == 0 {
		return []model.Claim{{Text: rule.sentinel, Citation: model.SentinelCitation}}
	}
	return claims
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
