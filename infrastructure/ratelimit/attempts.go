package ratelimit

import (
	"sync"
	"time"

	"lifex.health/infrastructure/database/repository/cache"
)

// FaceAttemptLimit caps face-identification attempts per source key
// per window.
const (
	FaceAttemptLimit  = 5
	FaceAttemptWindow = time.Minute
)

// AttemptLimiter throttles sensitive per-key operations. Implementations
// fail open: when the count cannot be determined the attempt is allowed
// rather than locking out a legitimate user on a cache outage.
type AttemptLimiter interface {
	// CheckAndIncrement records an attempt and reports whether it is
	// still within the limit.
	CheckAndIncrement(key string) bool
	// Reset clears the counter, typically on successful login.
	Reset(key string)
}

// FaceAttempts throttles the face identification endpoints. Tests swap
// in the in-memory limiter.
var FaceAttempts AttemptLimiter = NewRedisAttemptLimiter()

// RedisAttemptLimiter counts attempts with INCR and windows them with
// EXPIRE on first increment.
type RedisAttemptLimiter struct {
	Limit  int64
	Window time.Duration
	Prefix string
}

func NewRedisAttemptLimiter() *RedisAttemptLimiter {
	return &RedisAttemptLimiter{
		Limit:  FaceAttemptLimit,
		Window: FaceAttemptWindow,
		Prefix: "face-attempts",
	}
}

func (limiter *RedisAttemptLimiter) key(key string) string {
	return limiter.Prefix + ":" + key
}

func (limiter *RedisAttemptLimiter) CheckAndIncrement(key string) bool {
	count := cache.Cache.IncrementField(limiter.key(key), 1)
	if count == 1 {
		cache.Cache.SetTTL(limiter.key(key), limiter.Window)
	}
	if count == 0 {
		return true
	}
	return count <= limiter.Limit
}

func (limiter *RedisAttemptLimiter) Reset(key string) {
	cache.Cache.DeleteOne(limiter.key(key))
}

// MemoryAttemptLimiter is a process-local limiter for tests.
type MemoryAttemptLimiter struct {
	Limit  int64
	Window time.Duration
	Now    func() time.Time

	mutex  sync.Mutex
	counts map[string]*attemptWindow
}

type attemptWindow struct {
	count     int64
	expiresAt time.Time
}

func NewMemoryAttemptLimiter() *MemoryAttemptLimiter {
	return &MemoryAttemptLimiter{
		Limit:  FaceAttemptLimit,
		Window: FaceAttemptWindow,
		Now:    time.Now,
		counts: map[string]*attemptWindow{},
	}
}

func (limiter *MemoryAttemptLimiter) CheckAndIncrement(key string) bool {
	limiter.mutex.Lock()
	defer limiter.mutex.Unlock()

	now := limiter.Now()
	window, ok := limiter.counts[key]
	if !ok || now.After(window.expiresAt) {
		limiter.counts[key] = &attemptWindow{count: 1, expiresAt: now.Add(limiter.Window)}
		return true
	}
	window.count++
	return window.count <= limiter.Limit
}

func (limiter *MemoryAttemptLimiter) Reset(key string) {
	limiter.mutex.Lock()
	defer limiter.mutex.Unlock()
	delete(limiter.counts, key)
}
