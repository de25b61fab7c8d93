// Package score grades how much of a persona the fetched corpus
// actually supported. The coverage index never feeds back into
// extraction; it only annotates the finished record so readers know
// whether "Not specified" means a private person or an empty corpus.
package score

import (
	"fmt"
	"math"

	"github.com/personarium/personarium/internal/model"
)

// Signal types attached to a coverage result.
const (
	SignalAttributeCoverage = "attribute_coverage"
	SignalNarrativeCoverage = "narrative_coverage"
	SignalCorpusDepth       = "corpus_depth"
	SignalEmptyCorpus       = "empty_corpus"
	SignalNoPosts           = "no_posts"
)

const attributeCount = 4 // age, location, occupation, relationship

// Scorer computes the coverage index for a finished record.
type Scorer struct{}

// NewScorer creates a new scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate derives the 0-100 coverage index: resolved profile
// attributes contribute up to 40 points, narrative categories with
// cited claims up to 40, and corpus depth against the requested fetch
// limit up to 20. The result is a pure function of the record and
// corpus stats.
func (s *Scorer) Calculate(rec *model.PersonaRecord, corpus model.Corpus, requestedLimit int) model.Coverage {
	var signals []model.Signal

	attrScore, attrSignal := s.attributeCoverage(rec.PersonalInfo)
	signals = append(signals, attrSignal)

	narrScore, narrSignal := s.narrativeCoverage(rec)
	signals = append(signals, narrSignal)

	depthScore, depthSignal := s.corpusDepth(corpus, requestedLimit)
	signals = append(signals, depthSignal)

	if corpus.Empty() {
		signals = append(signals, model.Signal{
			Type:        SignalEmptyCorpus,
			Severity:    model.SeverityCritical,
			Description: "No public activity was fetched; every field is a default",
		})
	} else if len(corpus.Posts) == 0 {
		signals = append(signals, model.Signal{
			Type:        SignalNoPosts,
			Severity:    model.SeverityInfo,
			Description: "Account has comments but no posts; goals rely on post text",
		})
	}

	index := attrScore + narrScore + depthScore
	return model.Coverage{
		Index:      index,
		Confidence: s.confidence(index),
		Signals:    signals,
	}
}

// attributeCoverage scores resolved profile attributes (0-40 points).
func (s *Scorer) attributeCoverage(info model.PersonalInfo) (int, model.Signal) {
	resolved := 0
	for _, v := range []string{info.Age, info.Location, info.Occupation, info.RelationshipStatus} {
		if v != model.NotSpecified {
			resolved++
		}
	}
	score := resolved * 40 / attributeCount

	severity := model.SeverityInfo
	if resolved == 0 {
		severity = model.SeverityCritical
	} else if resolved <= attributeCount/2 {
		severity = model.SeverityWarning
	}

	return score, model.Signal{
		Type:        SignalAttributeCoverage,
		Severity:    severity,
		Description: fmt.Sprintf("Resolved %d of %d profile attributes", resolved, attributeCount),
	}
}

// narrativeCoverage scores narrative categories that produced at least
// one cited claim (0-40 points).
func (s *Scorer) narrativeCoverage(rec *model.PersonaRecord) (int, model.Signal) {
	groups := rec.ClaimGroups()
	filled := 0
	for _, g := range groups {
		for _, c := range g.Claims {
			if !c.Sentinel() {
				filled++
				break
			}
		}
	}
	score := filled * 40 / len(groups)

	severity := model.SeverityInfo
	if filled == 0 {
		severity = model.SeverityCritical
	} else if filled <= len(groups)/2 {
		severity = model.SeverityWarning
	}

	return score, model.Signal{
		Type:        SignalNarrativeCoverage,
		Severity:    severity,
		Description: fmt.Sprintf("%d of %d narrative categories have cited claims", filled, len(groups)),
	}
}

// corpusDepth scores fetched volume against the requested limit
// (0-20 points). The analyzer asks for limit comments and limit/2
// posts, so that sum is the denominator.
func (s *Scorer) corpusDepth(corpus model.Corpus, requestedLimit int) (int, model.Signal) {
	expected := requestedLimit + requestedLimit/2
	if expected <= 0 {
		expected = 1
	}

	total := corpus.TotalItems()
	ratio := float64(total) / float64(expected)
	if ratio > 1 {
		ratio = 1
	}
	score := int(math.Round(ratio * 20))

	severity := model.SeverityInfo
	if total == 0 {
		severity = model.SeverityCritical
	} else if ratio < 0.25 {
		severity = model.SeverityWarning
	}

	return score, model.Signal{
		Type:        SignalCorpusDepth,
		Severity:    severity,
		Description: fmt.Sprintf("Corpus holds %d items of ~%d requested", total, expected),
	}
}

// confidence maps the index to a band: below 35 is low, below 70 is
// medium, the rest is high.
func (s *Scorer) confidence(index int) string {
	switch {
	case index < 35:
		return "low"
	case index < 70:
		return "medium"
	default:
		return "high"
	}
}
