package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/personarium/personarium/internal/model"
)

type occupationRules struct {
	patterns []*regexp.Regexp
	fillerRe *regexp.Regexp
	shapeRe  *regexp.Regexp
}

func newOccupationRules() *occupationRules {
	return &occupationRules{
		patterns: []*regexp.Regexp{
			// "I work as a teacher"
			regexp.MustCompile(`(?i)\bwork(?:s|ed|ing)?\s+as\s+(?:a|an)\s+([a-zA-Z][a-zA-Z\s]*)`),
			// "my job is (being) a nurse"
			regexp.MustCompile(`(?i)\bmy\s+job\s+is\s+(?:being\s+)?(?:a|an)?\s*([a-zA-Z][a-zA-Z\s]*)`),
			// "I'm a plumber by trade"
			regexp.MustCompile(`(?i)\b(?:i['’]?m|i am)\s+(?:a|an)\s+([a-zA-Z][a-zA-Z\s]*?)\s+by\s+(?:trade|profession)\b`),
			// "I write for a living"
			regexp.MustCompile(`(?i)\bi\s+(?:do\s+)?([a-zA-Z][a-zA-Z\s]*?)\s+for\s+a\s+living\b`),
			// "employed as an accountant"
			regexp.MustCompile(`(?i)\b(?:employed|hired)\s+as\s+(?:a|an)\s+([a-zA-Z][a-zA-Z\s]*)`),
			// "studying computer science", "majored in biology"
			regexp.MustCompile(`(?i)\b(?:i\s+)?(?:study(?:ing)?|studied|major(?:ing|ed)?\s+in)\s+([a-zA-Z][a-zA-Z\s]*)`),
			// "I work in the healthcare industry"
			regexp.MustCompile(`(?i)\b(?:i\s+work|i['’]?m|i am)\s+in\s+(?:the\s+)?([a-zA-Z][a-zA-Z\s]*?)\s+(?:industry|field|sector)\b`),
			// "I run a small business", "I own my own studio"
			regexp.MustCompile(`(?i)\bi\s+(?:run|own)\s+(?:a|an|my\s+own)\s+([a-zA-Z\s]*?(?:business|company|startup|shop|store|restaurant|agency|firm|studio|practice))\b`),
			// "I'm a freelance writer", "I'm a consultant"
			regexp.MustCompile(`(?i)\b(?:i['’]?m|i am)\s+a\s+(freelance\s+[a-zA-Z][a-zA-Z\s]*|freelancer|contractor|consultant)\b`),
			// "I'm retired", "I'm between jobs"
			regexp.MustCompile(`(?i)\b(?:i['’]?m|i am)\s+(retired|unemployed|between\s+jobs)\b`),
			// catch-all "I'm a X"
			regexp.MustCompile(`(?i)\b(?:i['’]?m|i am)\s+(?:a|an)\s+([a-zA-Z][a-zA-Z\s]*)`),
		},
		fillerRe: regexp.MustCompile(`\b(a|an|the|my|at|in|for|with|and|or|but)\b`),
		shapeRe:  regexp.MustCompile(`^[a-z]+(?:\s+[a-z]+){0,3}$`),
	}
}

// Occupation resolves the account's line of work. It first runs the
// pattern table over fragments of at least minFragmentLen, trying
// every match of a pattern before the next pattern; failing that, it
// maps the most frequent professional subreddit; failing that, it
// looks for student phrasing anywhere in the corpus.
func (e *Extractor) Occupation(corpus model.Corpus) string {
	frags := corpus.Fragments()
	for _, frag := range frags {
		text := e.prep(frag.Text)
		if len(text) < minFragmentLen {
			continue
		}
		for _, re := range e.occupation.patterns {
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				if title, ok := e.occupation.validate(m[1]); ok {
					return title
				}
			}
		}
	}

	if occ := occupationFromSubreddits(corpus.Comments); occ != "" {
		return occ
	}

	blob := strings.ToLower(corpus.CombinedText())
	for _, indicator := range studentIndicators {
		if strings.Contains(blob, indicator) {
			return "Student"
		}
	}
	return ""
}

// validate cleans a captured span and accepts it when it names a known
// job term, truncating the span at that term so trailing clause text
// does not ride along. Spans without a known term still pass when they
// look like a short impersonal phrase.
func (r *occupationRules) validate(candidate string) (string, bool) {
	c := strings.TrimLeft(strings.TrimSpace(candidate), "-– .,'")
	c = strings.ToLower(c)
	c = r.fillerRe.ReplaceAllString(c, " ")
	c = strings.Join(strings.Fields(c), " ")
	if len(c) < 3 {
		return "", false
	}

	words := strings.Fields(c)
	for i, w := range words {
		if i >= 5 {
			break
		}
		if hasJobTerm(w) {
			return titleCase(strings.Join(words[:i+1], " ")), true
		}
	}

	if len(words) > 5 {
		return "", false
	}
	if r.shapeRe.MatchString(c) && !containsPronoun(c) {
		return titleCase(c), true
	}
	return "", false
}

func hasJobTerm(word string) bool {
	for _, term := range jobVocabulary {
		if strings.Contains(word, term) {
			return true
		}
	}
	return false
}

var pronounWords = map[string]bool{
	"i": true, "me": true, "my": true, "you": true,
	"your": true, "we": true, "us": true, "our": true,
}

func containsPronoun(s string) bool {
	for _, w := range strings.Fields(s) {
		if pronounWords[w] {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// occupationFromSubreddits maps the most frequent professional
// subreddit among the comments to a role label. Ties break by count
// descending, then name ascending, so the fallback is deterministic.
func occupationFromSubreddits(comments []model.Activity) string {
	counts := make(map[string]int)
	for _, cm := range comments {
		sub := strings.ToLower(cm.Subreddit)
		if _, ok := professionalSubreddits[sub]; ok {
			counts[sub]++
		}
	}
	if len(counts) == 0 {
		return ""
	}

	type subCount struct {
		name  string
		count int
	}
	ranked := make([]subCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, subCount{name, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].name < ranked[j].name
	})
	return professionalSubreddits[ranked[0].name]
}

var professionalSubreddits = map[string]string{
	"programming":          "Software Developer",
	"webdev":               "Web Developer",
	"learnprogramming":     "Aspiring Programmer",
	"cscareerquestions":    "Tech Professional",
	"datascience":          "Data Scientist",
	"engineering":          "Engineer",
	"askengineers":         "Engineer",
	"medicine":             "Medical Professional",
	"nursing":              "Nurse",
	"law":                  "Legal Professional",
	"lawyers":              "Lawyer",
	"teachers":             "Teacher",
	"marketing":            "Marketing Professional",
	"sales":                "Sales Professional",
	"entrepreneur":         "Entrepreneur",
	"startups":             "Startup Founder",
	"smallbusiness":        "Small Business Owner",
	"freelance":            "Freelancer",
	"graphic_design":       "Graphic Designer",
	"photography":          "Photographer",
	"filmmakers":           "Filmmaker",
	"writing":              "Writer",
	"art":                  "Artist",
	"music":                "Musician",
	"chefs":                "Chef",
	"talesfromyourserver":  "Restaurant Server",
	"talesfromretail":      "Retail Worker",
	"talesfromtechsupport": "IT Support",
}

var studentIndicators = []string{
	"college student", "university student", "grad student",
	"graduate student", "high school student", "student at",
	"studying at", "pursuing", "majoring in",
}

// jobVocabulary is the closed set of role terms a captured span may
// contain to be accepted outright.
var jobVocabulary = []string{
	"accountant", "actor", "administrator", "analyst", "architect",
	"artist", "astronomer", "attorney", "baker", "banker", "barista",
	"bartender", "biologist", "business", "carpenter", "cashier",
	"chef", "chemist", "cleaner", "coach", "company", "consultant",
	"contractor", "counselor", "dentist", "designer", "developer",
	"director", "doctor", "driver", "economist", "editor",
	"electrician", "engineer", "farmer", "firefighter", "freelancer",
	"geologist", "historian", "janitor", "journalist", "lawyer",
	"librarian", "manager", "marketer", "mathematician", "mechanic",
	"musician", "nurse", "officer", "optometrist", "paramedic",
	"pharmacist", "photographer", "physician", "physicist", "pilot",
	"plumber", "professor", "programmer", "psychologist", "realtor",
	"receptionist", "recruiter", "researcher", "retired", "scientist",
	"secretary", "startup", "student", "surgeon", "teacher",
	"technician", "therapist", "translator", "unemployed",
	"veterinarian", "waiter", "waitress", "writer",
}
