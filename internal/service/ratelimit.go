package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	bucketIdleTimeout = 10 * time.Minute
	cleanupInterval   = 5 * time.Minute
)

// TokenBucket is an in-memory per-key rate limiter. Each key gets its own
// token bucket. It is safe for concurrent use.
type TokenBucket struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     rate.Limit
	capacity int
	now      func() time.Time
}

type bucket struct {
	limiter *rate.Limiter
	last    time.Time
}

// NewTokenBucket creates a rate limiter that allows up to capacity tokens per
// key, refilling at perSecond tokens per second. Idle buckets are swept until
// ctx is cancelled.
func NewTokenBucket(ctx context.Context, perSecond, capacity float64) *TokenBucket {
	tb := &TokenBucket{
		buckets:  make(map[string]*bucket),
		rate:     rate.Limit(perSecond),
		capacity: int(capacity),
		now:      time.Now,
	}
	go tb.cleanupLoop(ctx)
	return tb
}

// Allow reports whether key may proceed, consuming one token if so.
func (tb *TokenBucket) Allow(key string) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(tb.rate, tb.capacity)}
		tb.buckets[key] = b
	}
	b.last = now
	return b.limiter.AllowN(now, 1)
}

// Len returns the number of tracked keys.
func (tb *TokenBucket) Len() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return len(tb.buckets)
}

func (tb *TokenBucket) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tb.sweep()
		}
	}
}

// sweep drops buckets that have been idle longer than bucketIdleTimeout.
func (tb *TokenBucket) sweep() {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	cutoff := tb.now().Add(-bucketIdleTimeout)
	for key, b := range tb.buckets {
		if b.last.Before(cutoff) {
			delete(tb.buckets, key)
		}
	}
}
