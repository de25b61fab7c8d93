package model

import "strings"

// ActivityKind distinguishes the two item shapes a Reddit account produces.
type ActivityKind string

const (
	KindComment ActivityKind = "comment"
	KindPost    ActivityKind = "post"
)

// Activity is one raw item fetched from an account's public history.
// Comments carry Body; posts carry Title and Selftext.
type Activity struct {
	Kind        ActivityKind `json:"kind"`
	Subreddit   string       `json:"subreddit"`
	Body        string       `json:"body,omitempty"`
	Title       string       `json:"title,omitempty"`
	Selftext    string       `json:"selftext,omitempty"`
	Score       int          `json:"score"`
	CreatedUTC  float64      `json:"created_utc"`
	Permalink   string       `json:"permalink,omitempty"`
	NumComments int          `json:"num_comments,omitempty"`
	IsSelf      bool         `json:"is_self,omitempty"`
}

// Text returns the analyzable text of the item: the body for comments,
// "title selftext" for posts.
func (a Activity) Text() string {
	if a.Kind == KindComment {
		return a.Body
	}
	return strings.TrimSpace(a.Title + " " + a.Selftext)
}

// Corpus is everything fetched for one account, newest first.
type Corpus struct {
	Account  string     `json:"account"`
	Comments []Activity `json:"comments"`
	Posts    []Activity `json:"posts"`
}

// Empty reports whether nothing was fetched.
func (c Corpus) Empty() bool {
	return len(c.Comments) == 0 && len(c.Posts) == 0
}

// TotalItems returns the combined item count.
func (c Corpus) TotalItems() int {
	return len(c.Comments) + len(c.Posts)
}

// Fragments returns the per-item texts in scan order: comments first,
// then posts. Extractors walk these and stop at the first match.
func (c Corpus) Fragments() []Fragment {
	out := make([]Fragment, 0, c.TotalItems())
	for _, cm := range c.Comments {
		out = append(out, Fragment{Text: cm.Text(), Subreddit: cm.Subreddit, Kind: KindComment})
	}
	for _, p := range c.Posts {
		out = append(out, Fragment{Text: p.Text(), Subreddit: p.Subreddit, Kind: KindPost})
	}
	return out
}

// CombinedText joins every fragment into one blob, used for sentiment
// and corpus-wide scans.
func (c Corpus) CombinedText() string {
	var b strings.Builder
	for _, f := range c.Fragments() {
		if f.Text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.Text)
	}
	return b.String()
}

// Subreddits returns the distinct subreddits of the account's comments.
func (c Corpus) Subreddits() []string {
	seen := make(map[string]bool)
	var out []string
	for _, cm := range c.Comments {
		if cm.Subreddit == "" || seen[cm.Subreddit] {
			continue
		}
		seen[cm.Subreddit] = true
		out = append(out, cm.Subreddit)
	}
	return out
}

// Fragment is one scannable unit of account text with its provenance.
type Fragment struct {
	Text      string
	Subreddit string
	Kind      ActivityKind
}

// Citation renders the fragment's provenance the way claims cite it.
func (f Fragment) Citation() string {
	if f.Kind == KindPost {
		return "Post in r/" + f.Subreddit
	}
	return "Comment in r/" + f.Subreddit
}
