package middleware

import (
	"sync"
	"time"
)

// Limiter enforces per-user activity budgets over a sliding window.
// Board policy: 3 posts and 10 comments per user per minute. State is
// in-process only and resets on restart.
type Limiter struct {
	mu     sync.Mutex
	window time.Duration
	events map[string][]time.Time
}

// NewLimiter creates a limiter with the given sliding window.
func NewLimiter(window time.Duration) *Limiter {
	return &Limiter{
		window: window,
		events: make(map[string][]time.Time),
	}
}

// Allow records an event under key and reports whether the key is still
// within max events for the window.
func (l *Limiter) Allow(key string, max int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	recent := l.events[key][:0]
	for _, at := range l.events[key] {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}

	if len(recent) >= max {
		l.events[key] = recent
		return false
	}

	l.events[key] = append(recent, now)
	return true
}

// Reset clears all recorded events.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = make(map[string][]time.Time)
}
