// Package ratelimiter keeps one token bucket per identity (usually a client IP).
package ratelimiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// UserRateLimiter manages rate limiting for multiple identities.
type UserRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

// New creates a limiter allowing rps requests per second per identity with the given burst.
// Identities unseen for idleTTL are dropped by Cleanup.
func New(rps float64, burst int, idleTTL time.Duration) *UserRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &UserRateLimiter{
		entries: make(map[string]*entry),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

func (u *UserRateLimiter) Allow(identity string) bool {
	now := u.now()

	u.mu.Lock()
	e, ok := u.entries[identity]
	if !ok {
		e = &entry{lim: rate.NewLimiter(u.rps, u.burst)}
		u.entries[identity] = e
	}
	e.lastSeen = now
	u.mu.Unlock()

	return e.lim.AllowN(now, 1)
}

// Cleanup removes identities idle for longer than idleTTL.
func (u *UserRateLimiter) Cleanup() {
	cutoff := u.now().Add(-u.idleTTL)

	u.mu.Lock()
	defer u.mu.Unlock()

	for k, e := range u.entries {
		if e.lastSeen.Before(cutoff) {
			delete(u.entries, k)
		}
	}
}

func (u *UserRateLimiter) Len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.entries)
}

// StartJanitor runs Cleanup every interval until ctx is cancelled.
func (u *UserRateLimiter) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	t := time.NewTicker(interval)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				u.Cleanup()
			}
		}
	}()
}
