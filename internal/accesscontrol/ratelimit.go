package accesscontrol

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a fixed-window check-and-increment throttle. Allow reports
// whether the request for key is within max requests for the current window.
type RateLimiter interface {
	Allow(key string, max int, window time.Duration) bool
}

type windowEntry struct {
	count   int
	resetAt time.Time
}

// FixedWindowLimiter keeps per-key counters in process memory behind a
// single mutex. Counters are lost on restart; throttling is best effort.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	now     func() time.Time
}

func NewFixedWindowLimiter() *FixedWindowLimiter {
	return &FixedWindowLimiter{
		entries: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

// Allow initializes a window on first use, resets it once the deadline
// passes, and otherwise increments the counter up to max.
func (l *FixedWindowLimiter) Allow(key string, max int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	entry, ok := l.entries[key]
	if !ok || now.After(entry.resetAt) {
		l.entries[key] = &windowEntry{count: 1, resetAt: now.Add(window)}
		return true
	}

	if entry.count >= max {
		return false
	}
	entry.count++
	return true
}

// Cleanup drops expired windows so abandoned keys do not accumulate.
func (l *FixedWindowLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, entry := range l.entries {
		if now.After(entry.resetAt) {
			delete(l.entries, key)
		}
	}
}

// StartCleanup runs Cleanup on the given interval until ctx is canceled.
func (l *FixedWindowLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				l.Cleanup()
			case <-ctx.Done():
				ticker.Stop()
				return
			}
		}
	}()
}
