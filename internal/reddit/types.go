package reddit

import (
	"encoding/json"
	"fmt"
	"html"

	"github.com/personarium/personarium/internal/model"
)

// listing is the envelope the public JSON endpoints wrap every page in.
type listing struct {
	Kind string      `json:"kind"`
	Data listingData `json:"data"`
}

type listingData struct {
	After    string  `json:"after"`
	Children []child `json:"children"`
}

// child wraps one item; Kind is "t1" for comments and "t3" for posts,
// though the endpoint already fixes which one a page carries.
type child struct {
	Kind string   `json:"kind"`
	Data itemData `json:"data"`
}

type itemData struct {
	Subreddit   string  `json:"subreddit"`
	Body        string  `json:"body"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Score       int     `json:"score"`
	CreatedUTC  float64 `json:"created_utc"`
	Permalink   string  `json:"permalink"`
	NumComments int     `json:"num_comments"`
	IsSelf      bool    `json:"is_self"`
}

// activity converts a raw item into the model shape. Text fields come
// HTML-escaped off the wire and are unescaped here, once.
func (d itemData) activity(kind model.ActivityKind) model.Activity {
	return model.Activity{
		Kind:        kind,
		Subreddit:   d.Subreddit,
		Body:        html.UnescapeString(d.Body),
		Title:       html.UnescapeString(d.Title),
		Selftext:    html.UnescapeString(d.Selftext),
		Score:       d.Score,
		CreatedUTC:  d.CreatedUTC,
		Permalink:   d.Permalink,
		NumComments: d.NumComments,
		IsSelf:      d.IsSelf,
	}
}

func parseListing(body []byte) (*listing, error) {
	var page listing
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return &page, nil
}
