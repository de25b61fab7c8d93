// Package analyzer turns one account's public history into a finished
// persona record. It owns the orchestration order: fetch, sentiment,
// attribute extraction, narrative extraction, classification, coverage.
// Every sink downstream treats the record as read-only.
package analyzer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/personarium/personarium/internal/cache"
	"github.com/personarium/personarium/internal/classify"
	"github.com/personarium/personarium/internal/extract"
	"github.com/personarium/personarium/internal/llm"
	"github.com/personarium/personarium/internal/model"
	"github.com/personarium/personarium/internal/normalize"
	"github.com/personarium/personarium/internal/reddit"
	"github.com/personarium/personarium/internal/score"
	"github.com/personarium/personarium/internal/sentiment"
)

// maxClaimsPerCategory caps each narrative list in the record.
const maxClaimsPerCategory = 3

// maxTopSubreddits caps the community frequency table.
const maxTopSubreddits = 5

// maxTopWords caps the vocabulary table.
const maxTopWords = 10

// Analyzer orchestrates the complete persona build for one account.
// One instance is safe for concurrent use by batch workers.
type Analyzer struct {
	source     *reddit.Client
	norm       *normalize.Normalizer
	sentiments *sentiment.Scorer
	extractor  *extract.Extractor
	scorer     *score.Scorer
	summarizer *llm.Summarizer // optional, nil when disabled
	config     *model.Config
}

// New wires an analyzer from configuration.
func New(cfg *model.Config) *Analyzer {
	var pageCache cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			dir = cache.DefaultDir()
		}
		pageCache = cache.NewLayeredCache(
			time.Duration(cfg.Cache.MemoryTTLMinutes)*time.Minute,
			dir,
			time.Duration(cfg.Cache.DiskTTLHours)*time.Hour,
		)
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		llmCfg := llm.ConfigFromModel(cfg.LLM)
		llmCfg.HTTPProxy = cfg.Proxy.HTTP
		llmCfg.HTTPSProxy = cfg.Proxy.HTTPS
		s, err := llm.NewSummarizer(llmCfg)
		if err != nil {
			fmt.Printf("Warning: Failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	norm := normalize.New()
	return &Analyzer{
		source: reddit.NewClient(reddit.Options{
			BaseURL:           cfg.Reddit.BaseURL,
			UserAgent:         cfg.Reddit.UserAgent,
			Timeout:           time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
			MaxBodyBytes:      cfg.Fetch.MaxBodyBytes,
			Retries:           cfg.Fetch.Retries,
			RespectRobots:     cfg.Fetch.RespectRobots,
			HTTPProxy:         cfg.Proxy.HTTP,
			HTTPSProxy:        cfg.Proxy.HTTPS,
			Cache:             pageCache,
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}),
		norm:       norm,
		sentiments: sentiment.NewScorer(),
		extractor:  extract.New(norm),
		scorer:     score.NewScorer(),
		summarizer: summarizer,
		config:     cfg,
	}
}

// Analyze builds the persona record for one account identifier. The
// identifier may be a bare name, a u/ prefix or a profile URL. Fetch
// failures degrade to a fully defaulted record; any other failure is an
// error for this account alone.
func (a *Analyzer) Analyze(ctx context.Context, account string) (rec *model.PersonaRecord, err error) {
	username, err := reddit.ResolveUsername(account)
	if err != nil {
		return nil, err
	}

	// A panicking rule table must not take down a batch run.
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = fmt.Errorf("analyze u/%s: %v", username, r)
		}
	}()

	corpus := a.fetchCorpus(ctx, username)
	rec = a.build(username, corpus)

	// The summary is attached after scoring and never feeds back into
	// the extracted fields.
	if a.summarizer != nil && a.summarizer.IsEnabled() {
		summary, serr := a.summarizer.GenerateSummary(ctx, *rec)
		if serr != nil {
			fmt.Printf("Warning: LLM summary generation failed: %v\n", serr)
		} else if summary != nil {
			rec.LLM = summary
		}
	}

	return rec, nil
}

// fetchCorpus pulls the account's recent history: up to limit comments
// and limit/2 posts. Either listing failing empties the whole corpus so
// the record is defaulted, never partial.
func (a *Analyzer) fetchCorpus(ctx context.Context, username string) model.Corpus {
	corpus := model.Corpus{Account: username}

	limit := a.config.Fetch.Limit
	if limit <= 0 {
		limit = model.DefaultConfig().Fetch.Limit
	}

	comments, err := a.source.UserComments(ctx, username, limit)
	if err != nil {
		fmt.Printf("Warning: fetching history for u/%s failed: %v\n", username, err)
		return corpus
	}
	posts, err := a.source.UserPosts(ctx, username, limit/2)
	if err != nil {
		fmt.Printf("Warning: fetching history for u/%s failed: %v\n", username, err)
		return corpus
	}

	corpus.Comments = comments
	corpus.Posts = posts
	return corpus
}

func (a *Analyzer) build(username string, corpus model.Corpus) *model.PersonaRecord {
	compound := a.sentiments.Score(corpus.CombinedText())

	rec := &model.PersonaRecord{
		Username:       username,
		GeneratedAt:    time.Now().UTC(),
		PersonalInfo:   a.extractor.PersonalInfo(corpus),
		Archetype:      classify.Archetype(corpus),
		Personality:    sentiment.Personality(compound),
		SentimentScore: compound,
		SentimentLabel: sentiment.Label(compound),
		Motivations:    capClaims(a.extractor.Motivations(corpus), maxClaimsPerCategory),
		Goals:          capClaims(a.extractor.Goals(corpus), maxClaimsPerCategory),
		Behaviors:      capClaims(a.extractor.Behaviors(corpus), maxClaimsPerCategory),
		Frustrations:   capClaims(a.extractor.Frustrations(corpus), maxClaimsPerCategory),
		ActivityLevel:  classify.ActivityLevel(len(corpus.Comments), len(corpus.Posts)),
		TotalComments:  len(corpus.Comments),
		TotalPosts:     len(corpus.Posts),
		TopSubreddits:  topSubreddits(corpus, maxTopSubreddits),
		TopWords:       a.norm.TopWords(fragmentTexts(corpus), maxTopWords),
	}
	rec.Coverage = a.scorer.Calculate(rec, corpus, a.config.Fetch.Limit)
	return rec
}

func capClaims(claims []model.Claim, n int) []model.Claim {
	if len(claims) > n {
		return claims[:n]
	}
	return claims
}

// topSubreddits tallies where the account is active, comments and posts
// together. Ties sort by name so the table is stable run to run.
func topSubreddits(corpus model.Corpus, n int) []model.SubredditCount {
	counts := make(map[string]int)
	for _, cm := range corpus.Comments {
		if cm.Subreddit != "" {
			counts[cm.Subreddit]++
		}
	}
	for _, p := range corpus.Posts {
		if p.Subreddit != "" {
			counts[p.Subreddit]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	out := make([]model.SubredditCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, model.SubredditCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func fragmentTexts(corpus model.Corpus) []string {
	frags := corpus.Fragments()
	texts := make([]string, 0, len(frags))
	for _, f := range frags {
		texts = append(texts, f.Text)
	}
	return texts
}
