package ratelimit

import (
	"testing"
	"time"
)

func TestMemoryAttemptLimiter(t *testing.T) {
	now := time.Now()
	limiter := NewMemoryAttemptLimiter()
	limiter.Now = func() time.Time { return now }

	for i := 0; i < FaceAttemptLimit; i++ {
		if !limiter.CheckAndIncrement("203.0.113.7") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if limiter.CheckAndIncrement("203.0.113.7") {
		t.Fatal("attempt past the limit should be denied")
	}

	// A different key has its own window.
	if !limiter.CheckAndIncrement("198.51.100.2") {
		t.Fatal("unrelated key should not share the exhausted window")
	}

	// The window expires and the key is usable again.
	now = now.Add(FaceAttemptWindow + time.Second)
	if !limiter.CheckAndIncrement("203.0.113.7") {
		t.Fatal("attempt after the window should be allowed")
	}
}

func TestMemoryAttemptLimiterReset(t *testing.T) {
	now := time.Now()
	limiter := NewMemoryAttemptLimiter()
	limiter.Now = func() time.Time { return now }

	for i := 0; i < FaceAttemptLimit+1; i++ {
		limiter.CheckAndIncrement("203.0.113.7")
	}
	limiter.Reset("203.0.113.7")
	if !limiter.CheckAndIncrement("203.0.113.7") {
		t.Fatal("reset should clear the counter")
	}
}
