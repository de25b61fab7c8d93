package score

import (
	"testing"

	"github.com/personarium/personarium/internal/model"
)

func fullRecord() *model.PersonaRecord {
	return &model.PersonaRecord{
		PersonalInfo: model.PersonalInfo{
			Age:                "28 years old",
			Location:           "Texas",
			Occupation:         "Teacher",
			RelationshipStatus: "married",
		},
		Motivations:  []model.Claim{{Text: "Wants to run...", Citation: "Comment in r/fitness"}},
		Goals:        []model.Claim{{Text: "Aims to finish...", Citation: "Post in r/running"}},
		Behaviors:    []model.Claim{{Text: "Habit: salts...", Citation: "Comment in r/cooking"}},
		Frustrations: []model.Claim{{Text: "Frustrated by: ...", Citation: "Comment in r/teaching"}},
	}
}

func defaultRecord() *model.PersonaRecord {
	rec := &model.PersonaRecord{PersonalInfo: model.NewPersonalInfo()}
	sentinel := []model.Claim{{Text: "none", Citation: model.SentinelCitation}}
	rec.Motivations, rec.Goals, rec.Behaviors, rec.Frustrations = sentinel, sentinel, sentinel, sentinel
	return rec
}

func corpusOf(comments, posts int) model.Corpus {
	var c model.Corpus
	for i := 0; i < comments; i++ {
		c.Comments = append(c.Comments, model.Activity{Kind: model.KindComment, Subreddit: "x", Body: "text"})
	}
	for i := 0; i < posts; i++ {
		c.Posts = append(c.Posts, model.Activity{Kind: model.KindPost, Subreddit: "x", Title: "t"})
	}
	return c
}

func TestScorer_Calculate_FullCoverage(t *testing.T) {
	scorer := NewScorer()

	// limit 100 -> expected 150 items; corpus delivers exactly that
	cov := scorer.Calculate(fullRecord(), corpusOf(100, 50), 100)

	if cov.Index != 100 {
		t.Errorf("Index = %d, want 100", cov.Index)
	}
	if cov.Confidence != "high" {
		t.Errorf("Confidence = %q, want high", cov.Confidence)
	}
	for _, sig := range cov.Signals {
		if sig.Severity != model.SeverityInfo {
			t.Errorf("full coverage should only carry info signals, got %+v", sig)
		}
	}
}

func TestScorer_Calculate_EmptyCorpus(t *testing.T) {
	scorer := NewScorer()

	cov := scorer.Calculate(defaultRecord(), model.Corpus{}, 100)

	if cov.Index != 0 {
		t.Errorf("Index = %d, want 0", cov.Index)
	}
	if cov.Confidence != "low" {
		t.Errorf("Confidence = %q, want low", cov.Confidence)
	}

	found := false
	for _, sig := range cov.Signals {
		if sig.Type == SignalEmptyCorpus && sig.Severity == model.SeverityCritical {
			found = true
		}
	}
	if !found {
		t.Error("expected a critical empty_corpus signal")
	}
}

func TestScorer_Calculate_PartialCoverage(t *testing.T) {
	scorer := NewScorer()

	rec := defaultRecord()
	rec.PersonalInfo.Age = "28 years old"
	rec.PersonalInfo.Location = "Texas"
	rec.Frustrations = []model.Claim{{Text: "Frustrated by: commutes", Citation: "Comment in r/teaching"}}

	// 2/4 attributes = 20, 1/4 narratives = 10, 75/150 items = 10
	cov := scorer.Calculate(rec, corpusOf(50, 25), 100)

	if cov.Index != 40 {
		t.Errorf("Index = %d, want 40", cov.Index)
	}
	if cov.Confidence != "medium" {
		t.Errorf("Confidence = %q, want medium", cov.Confidence)
	}
}

func TestScorer_Calculate_NoPostsSignal(t *testing.T) {
	scorer := NewScorer()

	cov := scorer.Calculate(defaultRecord(), corpusOf(10, 0), 100)

	found := false
	for _, sig := range cov.Signals {
		if sig.Type == SignalNoPosts {
			found = true
		}
	}
	if !found {
		t.Error("expected a no_posts signal for a comment-only corpus")
	}
}

func TestScorer_Calculate_DepthCapped(t *testing.T) {
	scorer := NewScorer()

	// more items than requested must not push depth past 20
	cov := scorer.Calculate(fullRecord(), corpusOf(400, 200), 100)
	if cov.Index != 100 {
		t.Errorf("Index = %d, want capped 100", cov.Index)
	}
}

func TestScorer_ConfidenceBands(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		index int
		want  string
	}{
		{0, "low"},
		{34, "low"},
		{35, "medium"},
		{69, "medium"},
		{70, "high"},
		{100, "high"},
	}
	for _, tt := range tests {
		if got := scorer.confidence(tt.index); got != tt.want {
			t.Errorf("confidence(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}
