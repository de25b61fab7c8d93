// Package normalize prepares raw account text for the extractors. A
// Normalizer is built once and is safe for concurrent use.
package normalize

import (
	"regexp"
	"sort"
	"strings"

	"github.com/personarium/personarium/internal/model"
	"golang.org/x/net/html"
)

var (
	urlRe          = regexp.MustCompile(`http\S+|www\.\S+`)
	punctRe        = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	markdownLinkRe = regexp.MustCompile(`\[.*?\]\(.*?\)`)
)

// Normalizer owns the stopword set and the compiled cleaning rules.
type Normalizer struct {
	stopwords map[string]struct{}
}

// New builds a Normalizer with the default English stopword set.
func New() *Normalizer {
	stop := make(map[string]struct{}, len(englishStopwords))
	for _, w := range englishStopwords {
		stop[w] = struct{}{}
	}
	return &Normalizer{stopwords: stop}
}

// Clean reduces text to analysis tokens: URLs removed, lowercased,
// punctuation to spaces, tokens shorter than 3 characters and stopwords
// dropped. Unusable input yields "" rather than an error.
func (n *Normalizer) Clean(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	t := urlRe.ReplaceAllString(text, "")
	t = strings.ToLower(t)
	t = punctRe.ReplaceAllString(t, " ")

	var kept []string
	for _, w := range strings.Fields(t) {
		if len(w) < 3 {
			continue
		}
		if _, stop := n.stopwords[w]; stop {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// Flatten lowercases and de-punctuates text for snippet presentation.
// Unlike Clean it keeps stopwords and short tokens, so the result still
// reads as a sentence.
func (n *Normalizer) Flatten(text string) string {
	t := urlRe.ReplaceAllString(text, "")
	t = strings.ToLower(t)
	t = punctRe.ReplaceAllString(t, " ")
	return strings.Join(strings.Fields(t), " ")
}

// StripMarkup removes markdown links, bare URLs and HTML tags while
// preserving case and punctuation, so pattern extractors see natural
// sentences.
func (n *Normalizer) StripMarkup(text string) string {
	t := markdownLinkRe.ReplaceAllString(text, "")
	t = urlRe.ReplaceAllString(t, "")
	if strings.Contains(t, "<") && strings.Contains(t, ">") {
		if doc, err := html.Parse(strings.NewReader(t)); err == nil {
			t = visibleText(doc)
		}
	}
	return strings.TrimSpace(t)
}

// visibleText walks the parsed document collecting text nodes, skipping
// script/style/noscript/iframe subtrees.
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.TrimSpace(buf.String())
}

// TopWords counts Clean()ed tokens across texts and returns the limit
// most frequent, ties broken alphabetically.
func (n *Normalizer) TopWords(texts []string, limit int) []model.WordCount {
	counts := make(map[string]int)
	for _, t := range texts {
		for _, w := range strings.Fields(n.Clean(t)) {
			counts[w]++
		}
	}
	if len(counts) == 0 || limit <= 0 {
		return nil
	}

	out := make([]model.WordCount, 0, len(counts))
	for w, c := range counts {
		out = append(out, model.WordCount{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
