package sentiment

import (
	"math"
	"testing"
)

func TestScoreEmpty(t *testing.T) {
	s := NewScorer()
	if got := s.Score(""); got != 0 {
		t.Errorf("Score(\"\") = %v, want 0", got)
	}
	if got := s.Score("   \n "); got != 0 {
		t.Errorf("Score(whitespace) = %v, want 0", got)
	}
}

func TestScoreNoLexiconHits(t *testing.T) {
	s := NewScorer()
	if got := s.Score("the quarterly spreadsheet contains twelve columns"); got != 0 {
		t.Errorf("neutral text should score 0, got %v", got)
	}
}

func TestScorePolarity(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name string
		text string
		sign int
	}{
		{"positive text", "I love this and it works great!", 1},
		{"negative text", "I hate this terrible broken mess.", -1},
		{"mixed leaning positive", "The update is great, despite one small problem it is wonderful", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.text)
			if tt.sign > 0 && got <= 0.1 {
				t.Errorf("Score(%q) = %v, want > 0.1", tt.text, got)
			}
			if tt.sign < 0 && got >= -0.1 {
				t.Errorf("Score(%q) = %v, want < -0.1", tt.text, got)
			}
		})
	}
}

func TestScoreBounds(t *testing.T) {
	s := NewScorer()
	texts := []string{
		"love love love love love love love great best wonderful!!!!",
		"hate hate hate worst terrible awful horrible disaster!!!!",
	}
	for _, text := range texts {
		got := s.Score(text)
		if got < -1 || got > 1 {
			t.Errorf("Score(%q) = %v, out of [-1,1]", text, got)
		}
		if math.Abs(got) < 0.5 {
			t.Errorf("strongly polarized text should score strongly, got %v", got)
		}
	}
}

func TestScoreNegation(t *testing.T) {
	s := NewScorer()

	plain := s.Score("this is good")
	negated := s.Score("this is not good")
	if plain <= 0 {
		t.Fatalf("Score(\"this is good\") = %v, want positive", plain)
	}
	if negated >= 0 {
		t.Errorf("Score(\"this is not good\") = %v, want negative", negated)
	}
}

func TestScoreBooster(t *testing.T) {
	s := NewScorer()

	plain := s.Score("good")
	boosted := s.Score("very good")
	if boosted <= plain {
		t.Errorf("booster should amplify: very good %v <= good %v", boosted, plain)
	}

	damped := s.Score("slightly good")
	if damped >= plain {
		t.Errorf("dampener should reduce: slightly good %v >= good %v", damped, plain)
	}
}

func TestScoreExclamation(t *testing.T) {
	s := NewScorer()

	if s.Score("good!") <= s.Score("good") {
		t.Error("exclamation should amplify positive text")
	}
	if s.Score("bad!") >= s.Score("bad") {
		t.Error("exclamation should amplify negative text")
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := NewScorer()
	text := "I really love hiking but I hate the rain!"
	first := s.Score(text)
	for i := 0; i < 5; i++ {
		if got := s.Score(text); got != first {
			t.Fatalf("run %d: Score = %v, want %v", i, got, first)
		}
	}
}

func TestLabelThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.5, "positive"},
		{0.11, "positive"},
		{0.1, "neutral"},
		{0, "neutral"},
		{-0.1, "neutral"},
		{-0.11, "negative"},
		{-0.5, "negative"},
	}
	for _, tt := range tests {
		if got := Label(tt.score); got != tt.want {
			t.Errorf("Label(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestPersonality(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.4, "Friendly and engaging"},
		{0, "Neutral or reserved"},
		{-0.4, "Direct or critical"},
	}
	for _, tt := range tests {
		if got := Personality(tt.score); got != tt.want {
			t.Errorf("Personality(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestLexiconParsed(t *testing.T) {
	s := NewScorer()
	if len(s.lexicon) < 200 {
		t.Fatalf("lexicon unexpectedly small: %d entries", len(s.lexicon))
	}
	if v := s.lexicon["love"]; v <= 0 {
		t.Errorf("love valence = %v, want positive", v)
	}
	if v := s.lexicon["hate"]; v >= 0 {
		t.Errorf("hate valence = %v, want negative", v)
	}
}
