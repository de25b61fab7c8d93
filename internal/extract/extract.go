// Package extract turns account text into labeled persona attributes and
// cited claims. Every extractor is an ordered, declarative rule table
// walked fragment by fragment: the first fragment that yields a valid
// match wins and scanning stops. Extractors never fail; a non-match is
// the expected "Not specified" or sentinel outcome.
package extract

import (
	"strings"

	"github.com/personarium/personarium/internal/model"
	"github.com/personarium/personarium/internal/normalize"
)

// minFragmentLen gates Location and Occupation scanning. Short fragments
// produce too many false positives for those two; Age scans everything.
const minFragmentLen = 30

// Extractor bundles the four attribute rule sets and the narrative
// rules behind one constructor so callers compile everything once.
type Extractor struct {
	norm *normalize.Normalizer

	age          *ageRules
	location     *locationRules
	occupation   *occupationRules
	relationship *relationshipRules
}

// New compiles all rule tables.
func New(norm *normalize.Normalizer) *Extractor {
	return &Extractor{
		norm:         norm,
		age:          newAgeRules(),
		location:     newLocationRules(),
		occupation:   newOccupationRules(),
		relationship: newRelationshipRules(),
	}
}

// PersonalInfo resolves the four profile attributes independently.
// Fields never interact; each runs its own first-match-wins scan.
func (e *Extractor) PersonalInfo(corpus model.Corpus) model.PersonalInfo {
	info := model.NewPersonalInfo()
	frags := corpus.Fragments()

	if v := e.Age(frags); v != "" {
		info.Age = v
	}
	if v := e.Location(frags); v != "" {
		info.Location = v
	}
	if v := e.Occupation(corpus); v != "" {
		info.Occupation = v
	}
	if v := e.Relationship(corpus); v != "" {
		info.RelationshipStatus = v
	}
	return info
}

// prep strips markdown links, URLs and tags from a fragment, leaving
// natural sentences for the pattern tables.
func (e *Extractor) prep(text string) string {
	return e.norm.StripMarkup(text)
}

// truncateRunes cuts s to at most n runes, mirroring how snippets are
// clipped for claim text.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// afterLast returns the part of s following the last occurrence of
// marker, or s unchanged when the marker is absent.
func afterLast(s, marker string) string {
	idx := strings.LastIndex(s, marker)
	if idx < 0 {
		return s
	}
	return s[idx+len(marker):]
}
