package mock

import (
	"context"

	"github.com/fwojciec/pageloader"
)

var _ pageloader.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pageloader.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) ([]byte, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ pageloader.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of pageloader.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
