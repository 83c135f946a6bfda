package pageloader

import "context"

// Fetcher retrieves the body of a URL with a GET request.
//
// Implementations return an *Error classified as ENETWORK, EHTTPSTATUS or
// ETIMEOUT when the request fails, and the raw body bytes otherwise.
type Fetcher interface {
	// Fetch issues GET url and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
