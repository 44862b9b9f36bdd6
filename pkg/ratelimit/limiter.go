// Package ratelimit throttles expensive requests per client key.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter decides whether one more request for key fits in the budget
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Window() time.Duration
}

// sweepEvery is how many Allow calls pass between sweeps of idle keys
const sweepEvery = 256

// SlidingWindow keeps request timestamps per key in memory. It suits a
// single process; behind Lambda use DynamoDBWindow.
type SlidingWindow struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	calls   int
	limit   int
	size    time.Duration
	now     func() time.Time
}

// NewSlidingWindow allows limit requests per key in any span of size
func NewSlidingWindow(limit int, size time.Duration) *SlidingWindow {
	return &SlidingWindow{
		windows: make(map[string][]time.Time),
		limit:   limit,
		size:    size,
		now:     time.Now,
	}
}

// Allow records the request when it fits
func (l *SlidingWindow) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.calls++; l.calls%sweepEvery == 0 {
		l.sweep(now)
	}
	recent := l.trim(l.windows[key], now)
	if len(recent) >= l.limit {
		l.windows[key] = recent
		return false, nil
	}
	l.windows[key] = append(recent, now)
	return true, nil
}

// Window returns the window size
func (l *SlidingWindow) Window() time.Duration {
	return l.size
}

// Sweep drops keys with no request inside the window
func (l *SlidingWindow) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sweep(l.now())
}

func (l *SlidingWindow) sweep(now time.Time) int {
	removed := 0
	for key, times := range l.windows {
		if recent := l.trim(times, now); len(recent) == 0 {
			delete(l.windows, key)
			removed++
		} else {
			l.windows[key] = recent
		}
	}
	return removed
}

func (l *SlidingWindow) trim(times []time.Time, now time.Time) []time.Time {
	start := now.Add(-l.size)
	i := 0
	for i < len(times) && !times[i].After(start) {
		i++
	}
	return times[i:]
}
