// Package classify buckets corpus statistics into fixed labels. Both
// classifiers are pure functions; branch order is part of the contract.
package classify

import (
	"strings"

	"github.com/personarium/personarium/internal/model"
)

// Archetype labels for the fixed decision rule.
const (
	ArchetypeObserver = "Observer"
	ArchetypeInquirer = "The Inquirer"
	ArchetypeHelper   = "The Helper"
	ArchetypeExplorer = "The Explorer"
	ArchetypeEngaged  = "The Engaged Member"
)

// Archetype classifies interaction style. Branches are evaluated in
// order and the first hit wins: empty corpus, question-heavy,
// answer-heavy, subreddit diversity, engaged default.
func Archetype(corpus model.Corpus) string {
	if corpus.Empty() {
		return ArchetypeObserver
	}

	questions, answers := 0, 0
	for _, cm := range corpus.Comments {
		text := cm.Text()
		if strings.Contains(text, "?") {
			questions++
		} else if len(strings.Fields(text)) > 10 {
			answers++
		}
	}

	switch {
	case questions > 2*answers:
		return ArchetypeInquirer
	case answers > 2*questions:
		return ArchetypeHelper
	case len(corpus.Subreddits()) > 5:
		return ArchetypeExplorer
	default:
		return ArchetypeEngaged
	}
}
