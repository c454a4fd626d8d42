package http

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// DefaultProbeRPS is the default pacing for probe requests. Sitemap
// discovery fires a burst of candidate-path requests at the same host, so
// probes are spaced out to stay polite.
const DefaultProbeRPS = 3.0

// Limiter provides per-host request pacing using token buckets.
// Each host gets its own limiter with a burst of 1, so consecutive
// requests to the same host are spaced out while requests to other hosts
// (e.g. sitemaps served from a CDN) are unaffected.
type Limiter struct {
	mu    sync.Mutex
	hosts map[string]*rate.Limiter
	rps   float64
}

// NewLimiter creates a new Limiter with the specified requests per second
// limit per host.
func NewLimiter(rps float64) *Limiter {
	return &Limiter{
		hosts: make(map[string]*rate.Limiter),
		rps:   rps,
	}
}

// Wait blocks until the rate limit allows a request to the host.
// Returns an error if the context is canceled before the wait completes.
// A nil Limiter never blocks.
func (l *Limiter) Wait(ctx context.Context, host string) error {
	if l == nil {
		return ctx.Err()
	}

	l.mu.Lock()
	limiter, ok := l.hosts[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.hosts[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
