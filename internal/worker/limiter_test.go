package worker

import (
	"context"
	"testing"
)

func TestNewLimiterDefaultBurst(t *testing.T) {
	if l := NewLimiter(10, 5); l.defaultBurst != 5 {
		t.Errorf("burst = %d, want 5", l.defaultBurst)
	}
	if l := NewLimiter(10, -1); l.defaultBurst != 5 {
		t.Errorf("burst = %d for negative input, want the default 5", l.defaultBurst)
	}
}

func TestLimiterWait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/foo"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "http://other.example/"); err != nil {
		t.Errorf("wait on a second host failed: %v", err)
	}
}

func TestLimiterKeysPerHost(t *testing.T) {
	// 1 rps with burst 1: the first request drains the host's bucket.
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("http://example.com/a") {
		t.Fatal("first request should pass")
	}
	if limiter.Allow("http://example.com/b") {
		t.Error("same host should be exhausted regardless of path")
	}
	if !limiter.Allow("http://other.example/a") {
		t.Error("a fresh host should have its own bucket")
	}
}

func TestLimiterWaitCanceled(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	if err := limiter.Wait(context.Background(), "http://example.com"); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := limiter.Wait(ctx, "http://example.com"); err == nil {
		t.Error("wait on an exhausted bucket with a dead context should fail")
	}
}

func TestLimiterRejectsBadURL(t *testing.T) {
	limiter := NewLimiter(10, 5)

	if err := limiter.Wait(context.Background(), "::invalid"); err == nil {
		t.Error("expected an error for an unparseable URL")
	}
	if limiter.Allow("::invalid") {
		t.Error("Allow must refuse an unparseable URL")
	}
}

func TestRequestHost(t *testing.T) {
	host, err := requestHost("http://example.com/foo")
	if err != nil {
		t.Fatalf("requestHost: %v", err)
	}
	if host != "example.com" {
		t.Errorf("host = %q, want example.com", host)
	}

	if _, err := requestHost("::invalid"); err == nil {
		t.Error("expected an error for an invalid URL")
	}
}
