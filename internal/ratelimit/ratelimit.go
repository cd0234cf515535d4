// Package ratelimit paces outbound API requests and backs off on explicit
// rate-limit responses.
//
// Klaviyo enforces 350 requests/second burst and 3,500 requests/minute
// steady limits on the events endpoints. The limiter is a synchronous gate:
// Wait blocks the single caller until the minimum inter-request interval
// has elapsed, which keeps the tool far under both limits.
package ratelimit

import (
	"sync"
	"time"
)

const (
	// DefaultInterval is the minimum delay between consecutive requests.
	DefaultInterval = 100 * time.Millisecond

	// DefaultBackoffBase is the first backoff sleep after a 429; it
	// doubles per consecutive retry.
	DefaultBackoffBase = time.Second

	// DefaultBackoffMax caps a single backoff sleep.
	DefaultBackoffMax = 30 * time.Second

	// DefaultMaxRetries bounds consecutive retries of one request.
	DefaultMaxRetries = 5
)

// Limiter is a pacing gate for a single execution thread. It is safe for
// concurrent use, but the pacing model assumes one request in flight.
type Limiter struct {
	interval   time.Duration
	base       time.Duration
	max        time.Duration
	maxRetries int

	sleep func(time.Duration)

	mu   sync.Mutex
	last time.Time
}

// New returns a Limiter with the default pacing policy.
func New() *Limiter {
	return NewWithPolicy(DefaultInterval, DefaultBackoffBase, DefaultBackoffMax, DefaultMaxRetries)
}

// NewWithPolicy returns a Limiter with an explicit policy.
func NewWithPolicy(interval, base, max time.Duration, maxRetries int) *Limiter {
	return &Limiter{
		interval:   interval,
		base:       base,
		max:        max,
		maxRetries: maxRetries,
		sleep:      time.Sleep,
	}
}

// MaxRetries returns the bound on consecutive rate-limit retries.
func (l *Limiter) MaxRetries() int { return l.maxRetries }

// Wait blocks until the minimum inter-request interval since the previous
// request has elapsed, then records the new request time.
func (l *Limiter) Wait() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.last.IsZero() {
		if elapsed := time.Since(l.last); elapsed < l.interval {
			l.sleep(l.interval - elapsed)
		}
	}
	l.last = time.Now()
}

// Backoff sleeps before retrying a rate-limited request. attempt counts
// from zero. When the server supplied a Retry-After duration it takes
// precedence over the exponential schedule.
func (l *Limiter) Backoff(attempt int, retryAfter time.Duration) {
	d := retryAfter
	if d <= 0 {
		d = l.base << uint(attempt)
		if d > l.max {
			d = l.max
		}
	}
	l.sleep(d)
}
