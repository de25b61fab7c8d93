package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/personarium/personarium/internal/model"
)

// Age bounds accepted from any pattern. Values outside are treated as
// non-matches, not errors.
const (
	minAge = 13
	maxAge = 100
)

// ageNow is swapped in tests so birth-year math stays stable.
var ageNow = time.Now

type ageRule struct {
	re        *regexp.Regexp
	birthYear bool
}

type ageRules struct {
	rules []ageRule
}

func newAgeRules() *ageRules {
	return &ageRules{rules: []ageRule{
		// "I'm 28", "I am 28 years old", "aged 28 y/o", "turning 30"
		{re: regexp.MustCompile(`(?i)\b(?:i['’]?m|i am|age is|aged|turning)\s+(\d{1,2})\s*(?:years?\s*old|y/o|yo|y\.o\.|\b)`)},
		// "age 28", "aged 28"
		{re: regexp.MustCompile(`(?i)\b(?:age|aged)\s+(\d{1,2})\s*(?:years?\s*old|y/o|yo|y\.o\.|\b)`)},
		// bare "28 years old", "28 y/o"
		{re: regexp.MustCompile(`(?i)(\d{1,2})\s*(?:years?\s*old|y/o|yo|y\.o\.)(?:\b|\W|$)`)},
		// "born in 1995", "born in the year of 2001"
		{re: regexp.MustCompile(`(?i)\bborn\s+(?:in|on|\w+)?\s*(?:the\s+year\s+)?(?:of\s+)?(19\d{2}|20[01]\d)(?:\D|$)`), birthYear: true},
		// "turned 30", "when i was 25", "since age 20"
		{re: regexp.MustCompile(`(?i)\b(?:turned|when i was|since i was|since age|age)\s+(\d{1,2})\b`)},
	}}
}

// Age scans fragments in order for an age mention and renders it as
// "N years old". Age has no minimum fragment length and no subreddit
// fallback; an unresolvable corpus yields "".
func (e *Extractor) Age(frags []model.Fragment) string {
	for _, frag := range frags {
		text := e.prep(frag.Text)
		if text == "" {
			continue
		}
		for _, rule := range e.age.rules {
			m := rule.re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if rule.birthYear {
				n = ageNow().Year() - n
			}
			if n < minAge || n > maxAge {
				continue
			}
			return fmt.Sprintf("%d years old", n)
		}
	}
	return ""
}
