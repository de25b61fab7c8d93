package model

import (
	"testing"
)

func TestActivityText(t *testing.T) {
	tests := []struct {
		name string
		item Activity
		want string
	}{
		{
			name: "comment uses body",
			item: Activity{Kind: KindComment, Body: "I love hiking."},
			want: "I love hiking.",
		},
		{
			name: "post joins title and selftext",
			item: Activity{Kind: KindPost, Title: "My goal", Selftext: "is to run a marathon"},
			want: "My goal is to run a marathon",
		},
		{
			name: "link post has no selftext",
			item: Activity{Kind: KindPost, Title: "Check this out"},
			want: "Check this out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCorpusFragmentsOrder(t *testing.T) {
	corpus := Corpus{
		Account: "tester",
		Comments: []Activity{
			{Kind: KindComment, Subreddit: "golang", Body: "first comment"},
			{Kind: KindComment, Subreddit: "hiking", Body: "second comment"},
		},
		Posts: []Activity{
			{Kind: KindPost, Subreddit: "running", Title: "a post", Selftext: "body"},
		},
	}

	frags := corpus.Fragments()
	if len(frags) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(frags))
	}
	if frags[0].Text != "first comment" || frags[1].Text != "second comment" {
		t.Errorf("comments should come before posts: %+v", frags)
	}
	if frags[2].Kind != KindPost {
		t.Errorf("last fragment should be the post, got %v", frags[2].Kind)
	}
	if got := frags[0].Citation(); got != "Comment in r/golang" {
		t.Errorf("comment citation = %q", got)
	}
	if got := frags[2].Citation(); got != "Post in r/running" {
		t.Errorf("post citation = %q", got)
	}
}

func TestCorpusEmpty(t *testing.T) {
	var corpus Corpus
	if !corpus.Empty() {
		t.Error("zero corpus should be empty")
	}
	corpus.Posts = append(corpus.Posts, Activity{Kind: KindPost, Title: "x"})
	if corpus.Empty() {
		t.Error("corpus with a post should not be empty")
	}
	if corpus.TotalItems() != 1 {
		t.Errorf("TotalItems() = %d, want 1", corpus.TotalItems())
	}
}

func TestClaimSentinel(t *testing.T) {
	sentinel := Claim{Text: "No explicit motivations mentioned recently", Citation: SentinelCitation}
	if !sentinel.Sentinel() {
		t.Error("claim with N/A citation should be a sentinel")
	}
	real := Claim{Text: "Wants to learn piano...", Citation: "Comment in r/piano"}
	if real.Sentinel() {
		t.Error("cited claim should not be a sentinel")
	}
}

func TestCitedSubreddits(t *testing.T) {
	rec := PersonaRecord{
		Motivations: []Claim{
			{Text: "Wants to travel...", Citation: "Comment in r/travel"},
			{Text: "Wants to save...", Citation: "Comment in r/personalfinance"},
		},
		Goals: []Claim{
			{Text: "Not explicitly mentioned in recent activity", Citation: SentinelCitation},
		},
		Behaviors: []Claim{
			{Text: "Habit: ...", Citation: "Comment in r/travel"},
		},
	}

	got := rec.CitedSubreddits()
	want := []string{"travel", "personalfinance"}
	if len(got) != len(want) {
		t.Fatalf("CitedSubreddits() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CitedSubreddits()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewPersonalInfoDefaults(t *testing.T) {
	info := NewPersonalInfo()
	for _, v := range []string{info.Age, info.Location, info.Occupation, info.RelationshipStatus} {
		if v != NotSpecified {
			t.Errorf("expected %q, got %q", NotSpecified, v)
		}
	}
}
