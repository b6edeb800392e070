package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for client-side request pacing. Keys are
// endpoint groups ("posts", "users", "auth"), so a burst of feed loads cannot
// starve an auth call.
type Limiter interface {
	Wait(ctx context.Context, key string) error
}

// InMemoryLimiter is an implementation of Limiter stored in memory
type InMemoryLimiter struct {
	buckets map[string]*rate.Limiter
	mu      sync.Mutex
	r       rate.Limit
	b       int
}

// NewInMemoryLimiter creates a new rate limiter
// Example: NewInMemoryLimiter(10, time.Second, 20) -> allows 10 requests per second, burst of 20
func NewInMemoryLimiter(requests int, per time.Duration, burst int) *InMemoryLimiter {
	return &InMemoryLimiter{
		buckets: make(map[string]*rate.Limiter),
		r:       rate.Every(per / time.Duration(requests)),
		b:       burst,
	}
}

// Wait blocks until the key's bucket has a token or the context is done.
func (l *InMemoryLimiter) Wait(ctx context.Context, key string) error {
	l.mu.Lock()
	limiter, exists := l.buckets[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.buckets[key] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}

var _ Limiter = (*InMemoryLimiter)(nil)
