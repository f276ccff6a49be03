// Package ratelimit keeps one token bucket per key, e.g. per user.
//
// Example usage:
//
//	lim := ratelimit.New(2, 5)
//	if !lim.Allow(userID) {
//	    return
//	}
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// pruneThreshold is the number of tracked keys above which idle buckets are
// dropped on the next Allow.
const pruneThreshold = 1024

// Keyed manages a rate.Limiter per key. Thread-safe.
type Keyed struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
	now      func() time.Time
}

// New creates a Keyed limiter allowing perSecond events per key with the
// given burst.
func New(perSecond float64, burst int) *Keyed {
	if burst < 1 {
		burst = 1
	}
	return &Keyed{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
		now:      time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (k *Keyed) WithClock(now func() time.Time) *Keyed {
	k.now = now
	return k
}

// Allow reports whether an event for key may happen now, consuming a token
// if so.
func (k *Keyed) Allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if len(k.limiters) > pruneThreshold {
		k.prune(now)
	}

	lim, ok := k.limiters[key]
	if !ok {
		lim = rate.NewLimiter(k.limit, k.burst)
		k.limiters[key] = lim
	}
	return lim.AllowN(now, 1)
}

// Len returns the number of tracked keys.
func (k *Keyed) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.limiters)
}

// prune forgets keys whose bucket has refilled; a fresh limiter behaves the
// same.
func (k *Keyed) prune(now time.Time) {
	for key, lim := range k.limiters {
		if lim.TokensAt(now) >= float64(k.burst) {
			delete(k.limiters, key)
		}
	}
}
