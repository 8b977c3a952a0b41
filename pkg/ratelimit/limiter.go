// Package ratelimit throttles requests to the outward-facing proxy services.
// The generation endpoint fronts a metered completion backend and the mailer
// fronts an SMTP relay; both need a cap on how fast any single caller can
// drive them.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket for one caller.
type bucket struct {
	mu         sync.Mutex
	capacity   int
	tokens     float64
	refillRate float64
	lastRefill time.Time
}

func newBucket(capacity int, refillRate float64) *bucket {
	return &bucket{
		capacity:   capacity,
		tokens:     float64(capacity),
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

func (b *bucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.refillRate
	if b.tokens > float64(b.capacity) {
		b.tokens = float64(b.capacity)
	}
	b.lastRefill = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true
	}
	return false
}

// Limiter keys token buckets by caller. Buckets idle longer than the ttl are
// dropped by a background sweep.
type Limiter struct {
	mu         sync.RWMutex
	buckets    map[string]*bucket
	capacity   int
	refillRate float64
	ttl        time.Duration
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewLimiter creates a per-key limiter allowing a burst of capacity and a
// sustained refillRate requests per second. ttl of zero keeps buckets
// forever. Call Stop when discarding a limiter that has a ttl, otherwise its
// sweep goroutine outlives it.
func NewLimiter(capacity int, refillRate float64, ttl time.Duration) *Limiter {
	l := &Limiter{
		buckets:    make(map[string]*bucket),
		capacity:   capacity,
		refillRate: refillRate,
		ttl:        ttl,
		stop:       make(chan struct{}),
	}
	if ttl > 0 {
		go l.sweep()
	}
	return l
}

// Stop terminates the background sweep. Safe to call more than once, and a
// no-op for limiters without a ttl.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
}

// Allow reports whether a request for key should proceed.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(l.capacity, l.refillRate)
		l.buckets[key] = b
	}
	l.mu.Unlock()

	return b.allow()
}

// ActiveKeys returns how many callers currently hold a bucket.
func (l *Limiter) ActiveKeys() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.buckets)
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			now := time.Now()
			l.mu.Lock()
			for key, b := range l.buckets {
				b.mu.Lock()
				idle := now.Sub(b.lastRefill) > l.ttl
				b.mu.Unlock()
				if idle {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
