package extract

import (
	"regexp"
	"strings"

	"github.com/personarium/personarium/internal/model"
)

type relationshipRule struct {
	re    *regexp.Regexp
	label string
}

type relationshipRules struct {
	direct     []relationshipRule
	contextual []relationshipRule
}

func newRelationshipRules() *relationshipRules {
	return &relationshipRules{
		// Order matters: a fragment is matched top to bottom, so the
		// married rules claim spouse mentions before the widowed rule
		// ever sees them.
		direct: []relationshipRule{
			{regexp.MustCompile(`(?i)\b(?:i['’]?m|i am|i['’]?ve been)\s+(?:happily\s+)?(?:married|engaged|betrothed|wed(?:ded)?)\b`), "married"},
			{regexp.MustCompile(`(?i)\bmy\s+(?:(?:wife|husband|spouse)\b|fianc[eé]e?)(?:\s+and\s+i\b)?`), "married"},
			{regexp.MustCompile(`(?i)\bwe(?:['’]?re| are)?\s+(?:married|engaged|together)\b`), "married"},
			{regexp.MustCompile(`(?i)\b(?:i['’]?m|i am|i['’]?ve been)\s+(?:in\s+a\s+relationship|dating|going\s+out|seeing\s+someone)\b`), "in a relationship"},
			{regexp.MustCompile(`(?i)\bmy\s+(?:(?:girlfriend|boyfriend|partner|significant\s+other|better\s+half)\b|s\.o\.?)`), "in a relationship"},
			{regexp.MustCompile(`(?i)\bwe(?:['’]?re| are)?\s+together\b`), "in a relationship"},
			{regexp.MustCompile(`(?i)\b(?:i['’]?m|i am|i['’]?ve been)\s+(?:single|unattached|not\s+seeing\s+anyone|not\s+dating|not\s+in\s+a\s+relationship)\b`), "single"},
			{regexp.MustCompile(`(?i)\b(?:dating\s+around|playing\s+the\s+field|happily\s+single)\b`), "single"},
			{regexp.MustCompile(`(?i)\bit['’]?s\s+complicated\b|\bcomplicated\s+relationship\b|\bon\s+and\s+off\b`), "it's complicated"},
			{regexp.MustCompile(`(?i)\bin\s+an?\s+open\s+relationship\b|\bopen\s+marriage\b|\bethically\s+non-?monogamous\b`), "in an open relationship"},
			{regexp.MustCompile(`(?i)\b(?:divorc(?:ed|ing)|separat(?:ed|ing)|split\s+up|broke\s+up)\b`), "divorced/separated"},
			{regexp.MustCompile(`(?i)\bwidow(?:ed|er)?\b|\blost\s+my\s+(?:wife|husband|partner)\b`), "widowed"},
		},
		contextual: []relationshipRule{
			{regexp.MustCompile(`(?i)\bmy\s+(?:(?:wife|husband|spouse|girlfriend|boyfriend|partner|significant\s+other)\b|fianc[eé]e?|s\.o\.?)`), "in a relationship"},
			{regexp.MustCompile(`(?i)\bour\s+(?:anniversary|wedding|marriage|relationship)\b`), "married"},
			{regexp.MustCompile(`(?i)\bwe['’]?ve\s+been\s+together\s+for\b`), "in a relationship"},
			{regexp.MustCompile(`(?i)\bmy\s+ex\b`), "single"},
		},
	}
}

// relationshipSubreddits resolves status from community membership when
// no fragment says anything directly. Precedence is fixed: divorce
// themes, then single-parent, then marriage, then dating.
var relationshipSubreddits = []struct {
	subs  []string
	label string
}{
	{[]string{"divorce"}, "divorced/separated"},
	{[]string{"singleparents"}, "single parent"},
	{[]string{"marriage", "weddingplanning", "weddings"}, "married"},
	{[]string{"relationships", "relationship_advice", "dating_advice", "dating"}, "in a relationship"},
}

// Relationship resolves relationship status. Each fragment is checked
// against the direct table first and the contextual table second; the
// first fragment with any hit decides. With no textual evidence at all,
// relationship-themed subreddit membership decides.
func (e *Extractor) Relationship(corpus model.Corpus) string {
	for _, frag := range corpus.Fragments() {
		text := e.prep(frag.Text)
		if text == "" {
			continue
		}
		for _, rule := range e.relationship.direct {
			if rule.re.MatchString(text) {
				return rule.label
			}
		}
		for _, rule := range e.relationship.contextual {
			if rule.re.MatchString(text) {
				return rule.label
			}
		}
	}

	member := make(map[string]bool)
	for _, cm := range corpus.Comments {
		member[strings.ToLower(cm.Subreddit)] = true
	}
	for _, group := range relationshipSubreddits {
		for _, sub := range group.subs {
			if member[sub] {
				return group.label
			}
		}
	}
	return ""
}
