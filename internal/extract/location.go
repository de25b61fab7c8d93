package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/personarium/personarium/internal/model"
)

// locationBlacklist rejects candidates by substring. It catches both
// junk phrases ("right here") and greedy captures that ran past the
// place name ("Texas and work there").
var locationBlacklist = []string{
	"reddit", "internet", "online", "web", "here", "today",
	"yesterday", "tomorrow", "this", "that", "there",
}

// titleShapeRe accepts naturally capitalized place phrases, optionally
// with one comma part ("Austin, Texas").
var titleShapeRe = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*(?:,\s*[A-Z][a-z]+)?$`)

type locationRules struct {
	patterns  []*regexp.Regexp
	gazetteer map[string]string // lowercase -> canonical
}

func newLocationRules() *locationRules {
	gaz := make(map[string]string, len(gazetteerPlaces))
	keys := make([]string, 0, len(gazetteerPlaces))
	for _, place := range gazetteerPlaces {
		lower := strings.ToLower(place)
		gaz[lower] = place
		keys = append(keys, regexp.QuoteMeta(lower))
	}
	sort.Strings(keys)

	return &locationRules{
		gazetteer: gaz,
		patterns: []*regexp.Regexp{
			// explicit indicators, case-insensitive; validation decides
			regexp.MustCompile(`(?i)(?:i live in|i['’]?m from|i am from|based in|located in|(?:my\s+)?hometown is|currently in|living in|reside in|based out of)\s+([a-zA-Z][a-zA-Z\s]*)`),
			// generic "in X" / "from X" with real capitalization
			regexp.MustCompile(`\bin\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
			regexp.MustCompile(`\bfrom\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
			// gazetteer places as standalone words
			regexp.MustCompile(`(?i)\b(` + strings.Join(keys, "|") + `)\b`),
		},
	}
}

// Location scans fragments of at least minFragmentLen for a place
// mention. Every match of a pattern is tried before moving on, so a
// rejected candidate does not shadow a valid one later in the same
// fragment. A candidate is accepted when it is a gazetteer entry
// (returned in canonical casing) or a capitalization-shaped phrase
// that survives the blacklist.
func (e *Extractor) Location(frags []model.Fragment) string {
	for _, frag := range frags {
		text := e.prep(frag.Text)
		if len(text) < minFragmentLen {
			continue
		}
		for _, re := range e.location.patterns {
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				if place, ok := e.location.validate(m[1]); ok {
					return place
				}
			}
		}
	}
	return ""
}

func (r *locationRules) validate(candidate string) (string, bool) {
	c := strings.Trim(strings.TrimSpace(candidate), ",")
	if len(c) < 3 {
		return "", false
	}
	lower := strings.ToLower(c)
	for _, bad := range locationBlacklist {
		if strings.Contains(lower, bad) {
			return "", false
		}
	}
	if canonical, ok := r.gazetteer[lower]; ok {
		return canonical, true
	}
	if titleShapeRe.MatchString(c) {
		return c, true
	}
	return "", false
}

// gazetteerPlaces is the closed list of recognized places: the fifty
// U.S. states plus common countries, in canonical casing.
var gazetteerPlaces = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California",
	"Colorado", "Connecticut", "Delaware", "Florida", "Georgia",
	"Hawaii", "Idaho", "Illinois", "Indiana", "Iowa", "Kansas",
	"Kentucky", "Louisiana", "Maine", "Maryland", "Massachusetts",
	"Michigan", "Minnesota", "Mississippi", "Missouri", "Montana",
	"Nebraska", "Nevada", "New Hampshire", "New Jersey", "New Mexico",
	"New York", "North Carolina", "North Dakota", "Ohio", "Oklahoma",
	"Oregon", "Pennsylvania", "Rhode Island", "South Carolina",
	"South Dakota", "Tennessee", "Texas", "Utah", "Vermont",
	"Virginia", "Washington", "West Virginia", "Wisconsin", "Wyoming",
	"United States", "Canada", "United Kingdom", "Australia",
	"Germany", "France", "Japan", "China", "India", "Brazil",
	"Mexico", "Italy", "Spain", "Russia", "South Korea",
}
