// Package rod provides a page fetcher that renders pages in headless Chrome
// before returning their markup.
package rod

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/pageloader"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds navigation, load and serialization of one page.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements pageloader.Fetcher at compile time.
var _ pageloader.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// It is meant for the page only; assets are raw bytes and go through the
// HTTP fetcher.
type Fetcher struct {
	timeout time.Duration

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for each fetch.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, pageloader.WrapError(pageloader.EINTERNAL, err, "launching browser")
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, pageloader.WrapError(pageloader.EINTERNAL, err, "connecting to browser")
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates to url, waits for the load event and returns the
// rendered document. A main document answered with a non-2xx status
// returns EHTTPSTATUS.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	browser := f.browser
	f.mu.Unlock()
	if browser == nil {
		return nil, pageloader.Errorf(pageloader.EINVALID, "fetcher is closed")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, pageloader.WrapError(pageloader.EINTERNAL, err, "opening browser page")
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := (proto.NetworkEnable{}).Call(page); err != nil {
		return nil, classify(url, err)
	}

	var status int
	wait := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status = e.Response.Status
		return true
	})

	if err := page.Navigate(url); err != nil {
		return nil, classify(url, err)
	}
	wait()

	if status != 0 && (status < 200 || status > 299) {
		return nil, &pageloader.Error{
			Code:       pageloader.EHTTPSTATUS,
			Message:    fmt.Sprintf("HTTP %d for %s", status, url),
			StatusCode: status,
		}
	}

	if err := page.WaitLoad(); err != nil {
		return nil, classify(url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, classify(url, err)
	}

	return []byte(html), nil
}

// Close shuts down the browser and its launcher process. It is safe to call
// more than once.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}

// LauncherPID returns the process ID of the browser launcher, or 0 once
// the fetcher is closed.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.launcher == nil {
		return 0
	}
	return f.launcher.PID()
}

// classify maps a browser error to an application error.
// Cancellation is returned unchanged.
func classify(url string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return pageloader.WrapError(pageloader.ETIMEOUT, err, "rendering %s timed out", url)
	}
	return pageloader.WrapError(pageloader.ENETWORK, err, "rendering %s failed", url)
}
