package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsGate answers whether a URL may be fetched according to the
// host's robots.txt. It is a politeness layer for self-hosted mirrors:
// any failure to obtain or parse robots.txt allows the fetch.
type RobotsGate struct {
	userAgent string
	client    *http.Client

	mu    sync.RWMutex
	hosts map[string]*robotstxt.RobotsData
}

// NewRobotsGate creates a gate matching rules against the product
// token of userAgent.
func NewRobotsGate(userAgent string, timeout time.Duration) *RobotsGate {
	return &RobotsGate{
		userAgent: NormalizeUserAgent(userAgent),
		client:    &http.Client{Timeout: timeout},
		hosts:     make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether rawURL may be fetched. robots.txt is fetched
// once per host and kept for the lifetime of the gate.
func (g *RobotsGate) Allowed(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return true
	}

	data, err := g.robotsFor(ctx, parsed.Scheme, parsed.Host)
	if err != nil {
		return true
	}
	return data.TestAgent(parsed.Path, g.userAgent)
}

func (g *RobotsGate) robotsFor(ctx context.Context, scheme, host string) (*robotstxt.RobotsData, error) {
	g.mu.RLock()
	data, ok := g.hosts[host]
	g.mu.RUnlock()
	if ok {
		return data, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", scheme, host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// FromResponse folds the status code into the rules: 404 allows
	// everything, 401/403 deny everything.
	data, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	g.mu.Lock()
	g.hosts[host] = data
	g.mu.Unlock()
	return data, nil
}

// NormalizeUserAgent reduces a full User-Agent value to the product
// token robots.txt groups are declared for.
func NormalizeUserAgent(ua string) string {
	parts := strings.Fields(ua)
	if len(parts) == 0 {
		return ua
	}
	return strings.Split(parts[0], "/")[0]
}
