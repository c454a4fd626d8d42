package sitemapr

import "context"

// Fetcher retrieves raw content from URLs over HTTP.
// Implementations are expected to follow redirects and to transparently
// decompress gzipped responses before returning them.
type Fetcher interface {
	// Fetch performs a GET request and returns the response body.
	// Non-200 responses are errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Close releases any resources held by the Fetcher.
	Close() error
}
