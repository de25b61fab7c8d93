// Package reddit fetches an account's public comment and post history
// through the JSON listing endpoints. No credentials are involved; the
// client is a polite anonymous reader with a descriptive User-Agent,
// rate limiting, retries and response caching.
package reddit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/personarium/personarium/internal/cache"
	"github.com/personarium/personarium/internal/model"
	"github.com/personarium/personarium/internal/util"
	"github.com/personarium/personarium/internal/worker"
)

// maxPageSize is the largest page the listing endpoints serve.
const maxPageSize = 100

// fetchSleepFunc is swapped in tests to skip backoff waits.
var fetchSleepFunc = time.Sleep

// errNotFound marks a 404 listing; callers translate it to an empty
// history rather than a failure.
var errNotFound = errors.New("account listing not found")

// Options configures a Client. Zero values fall back to the defaults
// from model.DefaultConfig.
type Options struct {
	BaseURL       string
	UserAgent     string
	Timeout       time.Duration
	MaxBodyBytes  int64
	Retries       int
	RespectRobots bool
	HTTPProxy     string
	HTTPSProxy    string

	// Cache holds raw listing pages; nil disables caching.
	Cache    cache.Cache
	CacheTTL time.Duration

	// RequestsPerSecond and Burst shape the shared rate limiter.
	RequestsPerSecond float64
	Burst             int
}

// Client reads public account listings. One instance is safe for
// concurrent use and shares its rate limiter across all callers.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxBytes   int64
	retries    int
	limiter    *worker.Limiter
	cache      cache.Cache
	cacheTTL   time.Duration
	robots     *util.RobotsGate
}

// NewClient builds a client from opts, filling unset fields from the
// package defaults.
func NewClient(opts Options) *Client {
	def := model.DefaultConfig()
	if opts.BaseURL == "" {
		opts.BaseURL = def.Reddit.BaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = def.Reddit.UserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Duration(def.Fetch.TimeoutSeconds) * time.Second
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = def.Fetch.MaxBodyBytes
	}
	if opts.Retries <= 0 {
		opts.Retries = def.Fetch.Retries
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = def.RateLimit.RequestsPerSecond
	}
	if opts.Burst <= 0 {
		opts.Burst = def.RateLimit.Burst
	}

	var robots *util.RobotsGate
	if opts.RespectRobots {
		robots = util.NewRobotsGate(opts.UserAgent, opts.Timeout)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(opts.HTTPProxy, opts.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		maxBytes:  opts.MaxBodyBytes,
		retries:   opts.Retries,
		limiter:   worker.NewLimiter(opts.RequestsPerSecond, opts.Burst),
		cache:     opts.Cache,
		cacheTTL:  opts.CacheTTL,
		robots:    robots,
	}
}

// UserComments fetches up to limit of the account's newest comments.
// A missing or suspended account yields an empty slice, not an error.
func (c *Client) UserComments(ctx context.Context, username string, limit int) ([]model.Activity, error) {
	return c.fetchItems(ctx, username, "comments", model.KindComment, limit)
}

// UserPosts fetches up to limit of the account's newest posts.
func (c *Client) UserPosts(ctx context.Context, username string, limit int) ([]model.Activity, error) {
	return c.fetchItems(ctx, username, "submitted", model.KindPost, limit)
}

func (c *Client) fetchItems(ctx context.Context, username, endpoint string, kind model.ActivityKind, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		return nil, nil
	}

	var items []model.Activity
	after := ""
	for len(items) < limit {
		pageSize := limit - len(items)
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}

		page, err := c.fetchListing(ctx, c.listingURL(username, endpoint, pageSize, after))
		if err != nil {
			return nil, fmt.Errorf("fetch %s for %s: %w", endpoint, username, err)
		}
		if page == nil || len(page.Data.Children) == 0 {
			break
		}

		for _, ch := range page.Data.Children {
			items = append(items, ch.Data.activity(kind))
		}

		after = page.Data.After
		if after == "" {
			break
		}
	}

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (c *Client) listingURL(username, endpoint string, pageSize int, after string) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(pageSize))
	q.Set("sort", "new")
	if after != "" {
		q.Set("after", after)
	}
	return fmt.Sprintf("%s/user/%s/%s.json?%s", c.baseURL, url.PathEscape(username), endpoint, q.Encode())
}

// fetchListing returns one parsed page, nil when the listing does not
// exist. Raw pages are cached by URL so repeated analyses skip the
// network.
func (c *Client) fetchListing(ctx context.Context, rawURL string) (*listing, error) {
	key := cache.Key(rawURL)
	if c.cache != nil {
		if cached, found := c.cache.Get(key); found {
			return parseListing(cached)
		}
	}

	if c.robots != nil && !c.robots.Allowed(ctx, rawURL) {
		return nil, fmt.Errorf("robots.txt disallows %s", rawURL)
	}

	body, err := c.getWithRetry(ctx, rawURL)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Set(key, body, c.cacheTTL)
	}
	return parseListing(body)
}

// getWithRetry runs the request with exponential backoff on 429, 5xx
// and transport errors. 404 is final on the first response.
func (c *Client) getWithRetry(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		if attempt > 0 {
			fetchSleepFunc(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		body, err := c.get(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		if errors.Is(err, errNotFound) || !isRetryable(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{code: resp.StatusCode, status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

type statusError struct {
	code   int
	status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status: %s", e.status)
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}
	// transport-level failures are worth another try; request
	// construction and body reads are not
	return strings.HasPrefix(err.Error(), "fetch:")
}
