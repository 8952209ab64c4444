package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}
	
	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://news.example.in/rss"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// A second host has its own bucket and clears immediately
	if err := limiter.Wait(ctx, "http://pib.example.in/feed"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	start := time.Now()
	err := limiter.WaitWithDelay(ctx, "http://news.example.in", 50*time.Millisecond)
	if err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}

	duration := time.Since(start)
	if duration < 50*time.Millisecond {
		t.Errorf("expected delay >= 50ms, got %v", duration)
	}
}

func TestLimiter_PerHostBuckets(t *testing.T) {
	// 1 rps with burst 1: the single token goes to the first request
	limiter := NewLimiter(1, 1)
	ctx := context.Background()
	url := "http://news.example.in"

	if err := limiter.Wait(ctx, url); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	if limiter.Allow(url) {
		t.Errorf("expected allow to fail once the host's token is spent")
	}

	// An untouched host is unaffected
	if !limiter.Allow("http://other.example.in") {
		t.Errorf("expected allow for a fresh host")
	}
}

func TestLimiter_SetDomainRate(t *testing.T) {
	limiter := NewLimiter(10, 10)
	domain := "slow.example.in"

	limiter.SetDomainRate(domain, 0.1, 1)

	if !limiter.Allow("http://" + domain) {
		t.Errorf("first request should pass on the burst token")
	}
	if limiter.Allow("http://" + domain) {
		t.Errorf("second request should be throttled")
	}

	// The override must not leak into other hosts
	if !limiter.Allow("http://fast.example.in") {
		t.Errorf("other host should keep the default rate")
	}
}

func TestExtractDomain(t *testing.T) {
	domain, err := extractDomain("http://news.example.in/rss/top")
	if err != nil {
		t.Fatalf("extractDomain failed: %v", err)
	}
	if domain != "news.example.in" {
		t.Errorf("expected news.example.in, got %s", domain)
	}

	if _, err = extractDomain("::invalid"); err == nil {
		t.Errorf("expected error for invalid URL")
	}
}
