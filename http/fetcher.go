// Package http provides the HTTP transport used to download pages and
// their assets.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/pageloader"
)

// DefaultFetchTimeout is the default per-request timeout.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "pageloader/1.0"

// Ensure Fetcher implements pageloader.Fetcher at compile time.
var _ pageloader.Fetcher = (*Fetcher)(nil)

// Fetcher issues GET requests and classifies their failures.
// The response body is returned byte for byte.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	limiter   pageloader.HostLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for each request.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithLimiter paces requests per host. Requests are not limited by default.
func WithLimiter(l pageloader.HostLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithClient sets the HTTP client requests are sent with. The Fetcher
// works on a copy carrying the configured timeout; c itself is not modified.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	client := &http.Client{}
	if f.client != nil {
		c := *f.client
		client = &c
	}
	client.Timeout = f.timeout
	f.client = client

	return f
}

// Fetch retrieves the body of url.
//
// Non-2xx responses return EHTTPSTATUS, exceeded deadlines return ETIMEOUT
// and other transport failures return ENETWORK.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pageloader.WrapError(pageloader.EINVALID, err, "invalid request URL %q", url)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, req.URL.Host); err != nil {
			return nil, classify(url, err)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &pageloader.Error{
			Code:       pageloader.EHTTPSTATUS,
			Message:    fmt.Sprintf("HTTP %d for %s", resp.StatusCode, url),
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(url, err)
	}

	return body, nil
}

// Close releases resources. For HTTP fetcher this only drops idle
// connections since http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// classify maps a transport error to an application error.
// Cancellation is returned unchanged.
func classify(url string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return pageloader.WrapError(pageloader.ETIMEOUT, err, "GET %s timed out", url)
	}
	return pageloader.WrapError(pageloader.ENETWORK, err, "GET %s failed", url)
}
