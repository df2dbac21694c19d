package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestLimiterAllowsWithinQuota(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewFromAddr(redis.Addr(), "", "test:ratelimit", 2, time.Second)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	if !limiter.Allow("ip-1") {
		t.Fatalf("first request should pass")
	}
	if !limiter.Allow("ip-1") {
		t.Fatalf("second request should pass")
	}
	if limiter.Allow("ip-1") {
		t.Fatalf("third request should be blocked")
	}
	if !limiter.Allow("ip-2") {
		t.Fatalf("other key should have its own window")
	}
}

func TestLimiterFailsClosed(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewFromAddr(redis.Addr(), "", "test:ratelimit", 1, time.Second)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	redis.Close()
	if limiter.Allow("ip-1") {
		t.Fatalf("limiter should fail closed on redis errors")
	}
}

func TestLimiterConstructorValidation(t *testing.T) {
	if _, err := NewFromAddr("", "", "test:ratelimit", 1, time.Second); err == nil {
		t.Fatalf("expected error for empty redis addr")
	}
	redis := miniredis.RunT(t)
	if _, err := NewFromAddr(redis.Addr(), "", "test:ratelimit", 0, time.Second); err == nil {
		t.Fatalf("expected error for non-positive limit")
	}
	if _, err := New(nil, "test:ratelimit", 1, time.Second); err == nil {
		t.Fatalf("expected error for nil client")
	}
}
