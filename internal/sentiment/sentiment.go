// Package sentiment scores raw text with an embedded valence lexicon.
// The scorer is built once per process and is safe for concurrent use.
package sentiment

import (
	"bufio"
	_ "embed"
	"math"
	"strconv"
	"strings"
	"unicode"
)

//go:embed lexicon.txt
var lexiconData string

// normalizationAlpha dampens the compound score toward the asymptotes;
// compound = sum / sqrt(sum^2 + alpha).
const normalizationAlpha = 15.0

// negationScalar flips and dampens a valence in a negated context.
const negationScalar = -0.74

// exclamationBoost is added per trailing '!', capped at 4.
const exclamationBoost = 0.292

// boosterStep is the intensity delta contributed by a degree adverb.
const boosterStep = 0.293

var negators = map[string]bool{
	"aint": true, "ain't": true, "arent": true, "aren't": true,
	"cannot": true, "cant": true, "can't": true,
	"couldnt": true, "couldn't": true,
	"didnt": true, "didn't": true, "doesnt": true, "doesn't": true,
	"dont": true, "don't": true,
	"hadnt": true, "hadn't": true, "hasnt": true, "hasn't": true,
	"havent": true, "haven't": true, "isnt": true, "isn't": true,
	"mightnt": true, "mightn't": true, "mustnt": true, "mustn't": true,
	"neither": true, "never": true, "no": true, "none": true,
	"nope": true, "nor": true, "not": true, "nothing": true,
	"nowhere": true, "rarely": true, "seldom": true,
	"shant": true, "shan't": true, "shouldnt": true, "shouldn't": true,
	"wasnt": true, "wasn't": true, "werent": true, "weren't": true,
	"without": true, "wont": true, "won't": true,
	"wouldnt": true, "wouldn't": true,
	"hardly": true, "scarcely": true, "barely": true,
}

var boosters = map[string]float64{
	"absolutely":   boosterStep,
	"amazingly":    boosterStep,
	"completely":   boosterStep,
	"considerably": boosterStep,
	"deeply":       boosterStep,
	"enormously":   boosterStep,
	"entirely":     boosterStep,
	"especially":   boosterStep,
	"extremely":    boosterStep,
	"greatly":      boosterStep,
	"highly":       boosterStep,
	"hugely":       boosterStep,
	"incredibly":   boosterStep,
	"really":       boosterStep,
	"remarkably":   boosterStep,
	"so":           boosterStep,
	"totally":      boosterStep,
	"tremendously": boosterStep,
	"truly":        boosterStep,
	"unbelievably": boosterStep,
	"utterly":      boosterStep,
	"very":         boosterStep,
	"almost":       -boosterStep,
	"kinda":        -boosterStep,
	"less":         -boosterStep,
	"little":       -boosterStep,
	"marginally":   -boosterStep,
	"occasionally": -boosterStep,
	"partly":       -boosterStep,
	"slightly":     -boosterStep,
	"somewhat":     -boosterStep,
}

// Scorer holds the parsed lexicon.
type Scorer struct {
	lexicon map[string]float64
}

// NewScorer parses the embedded lexicon. Lines are "token<TAB>valence";
// malformed lines are skipped.
func NewScorer() *Scorer {
	lex := make(map[string]float64)
	scanner := bufio.NewScanner(strings.NewReader(lexiconData))
	for scanner.Scan() {
		parts := strings.SplitN(scanner.Text(), "\t", 2)
		if len(parts) != 2 {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			continue
		}
		lex[strings.TrimSpace(parts[0])] = v
	}
	return &Scorer{lexicon: lex}
}

// Score computes the compound polarity of raw text in [-1, 1]. Text with
// no scorable tokens returns 0.
func (s *Scorer) Score(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	var sum float64
	matched := false
	for i, tok := range tokens {
		valence, ok := s.lexicon[tok]
		if !ok {
			continue
		}
		matched = true

		// Degree adverbs within the three preceding tokens scale the
		// hit, decaying with distance.
		for d := 1; d <= 3 && i-d >= 0; d++ {
			boost, isBooster := boosters[tokens[i-d]]
			if !isBooster {
				continue
			}
			scale := 1.0
			if d == 2 {
				scale = 0.95
			} else if d == 3 {
				scale = 0.9
			}
			if valence < 0 {
				valence -= boost * scale
			} else {
				valence += boost * scale
			}
		}

		// A negator within the three preceding tokens flips the hit.
		for d := 1; d <= 3 && i-d >= 0; d++ {
			if negators[tokens[i-d]] {
				valence *= negationScalar
				break
			}
		}

		sum += valence
	}

	if !matched {
		return 0
	}

	if bangs := strings.Count(text, "!"); bangs > 0 {
		if bangs > 4 {
			bangs = 4
		}
		amp := float64(bangs) * exclamationBoost
		if sum > 0 {
			sum += amp
		} else if sum < 0 {
			sum -= amp
		}
	}

	compound := sum / math.Sqrt(sum*sum+normalizationAlpha)
	return math.Max(-1, math.Min(1, compound))
}

// Label buckets a compound score: > 0.1 positive, < -0.1 negative,
// otherwise neutral. The thresholds are fixed.
func Label(score float64) string {
	switch {
	case score > 0.1:
		return "positive"
	case score < -0.1:
		return "negative"
	default:
		return "neutral"
	}
}

// Personality maps a compound score to the persona's tone line, using
// the same fixed thresholds as Label.
func Personality(score float64) string {
	switch {
	case score > 0.1:
		return "Friendly and engaging"
	case score < -0.1:
		return "Direct or critical"
	default:
		return "Neutral or reserved"
	}
}

// tokenize lowercases and splits text, trimming surrounding punctuation
// from each token while keeping internal apostrophes ("don't").
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.TrimFunc(f, func(r rune) bool {
			return !isWordRune(r)
		})
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func isWordRune(r rune) bool {
	return r == '\'' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
