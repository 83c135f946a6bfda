package http

import (
	"context"
	"sync"

	"github.com/fwojciec/pageloader"
	"golang.org/x/time/rate"
)

var _ pageloader.HostLimiter = (*HostLimiter)(nil)

// HostLimiter paces requests so that each host sees at most rps requests
// per second. Hosts are keyed by URL authority, so ports count as distinct
// hosts. A page and its assets usually share one host, which makes the
// whole download run at the configured pace.
type HostLimiter struct {
	rps float64

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewHostLimiter returns a limiter allowing rps requests per second per
// host. A non-positive rps disables pacing.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		rps:     rps,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Wait returns once a request to host may be sent, or with the context's
// error if ctx ends first.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	if l.rps <= 0 {
		return ctx.Err()
	}
	return l.bucket(host).Wait(ctx)
}

// bucket returns the token bucket for host, creating it on first use.
// Burst is 1 so the first request goes out at once and later ones are spaced.
func (l *HostLimiter) bucket(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[host]
	if !ok {
		b = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.buckets[host] = b
	}
	return b
}
