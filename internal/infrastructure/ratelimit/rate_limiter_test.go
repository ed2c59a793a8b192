package ratelimit

import (
	"testing"
	"time"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 1, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := bucket.Allow()
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	allowed, wait := bucket.Allow()
	if allowed {
		t.Fatal("expected bucket to be empty")
	}
	if wait <= 0 {
		t.Fatalf("expected positive wait time, got %v", wait)
	}
}

func TestTokenBucketRefills(t *testing.T) {
	bucket := NewTokenBucket(1, 1, 10*time.Millisecond)

	if allowed, _ := bucket.Allow(); !allowed {
		t.Fatal("first request should be allowed")
	}
	if allowed, _ := bucket.Allow(); allowed {
		t.Fatal("second request should be denied")
	}

	time.Sleep(20 * time.Millisecond)

	if allowed, _ := bucket.Allow(); !allowed {
		t.Fatal("request after refill should be allowed")
	}
}

func TestLimiterKeysByUserAndAction(t *testing.T) {
	limiter := NewRateLimiter()

	// Drain user-1's send_message bucket.
	for {
		allowed, _ := limiter.Allow("user-1", "send_message")
		if !allowed {
			break
		}
	}

	if allowed, _ := limiter.Allow("user-2", "send_message"); !allowed {
		t.Fatal("another user's bucket should be unaffected")
	}
	if allowed, _ := limiter.Allow("user-1", "start_conversation"); !allowed {
		t.Fatal("another action's bucket should be unaffected")
	}
}
