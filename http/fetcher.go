// Package http provides HTTP-based implementations of the sitemapr
// discovery interfaces: a Fetcher that handles gzipped responses and a
// DiscoveryService that runs the sitemap fallback chain.
package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/sitemapr"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent with every request. Some sites return 403 to
// clients without a browser-like User-Agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Ensure Fetcher implements sitemapr.Fetcher at compile time.
var _ sitemapr.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw content from URLs using HTTP GET requests.
// Gzipped sitemap bodies are decompressed transparently: a body is treated
// as gzip when the URL ends in .gz, the Content-Type is application/x-gzip,
// or the body starts with the gzip magic bytes.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header sent with requests.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithClient sets the underlying HTTP client. Useful for tests with
// httptest servers.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// Fetch retrieves the content at the given URL, following redirects.
// Non-200 responses are errors: ENOTFOUND for a 404, EUNAVAILABLE for
// anything else.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		code := sitemapr.EUNAVAILABLE
		if resp.StatusCode == http.StatusNotFound {
			code = sitemapr.ENOTFOUND
		}
		return nil, sitemapr.Errorf(code, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if isGzip(rawURL, resp.Header.Get("Content-Type"), body) {
		return gunzip(body)
	}

	return body, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// isGzip reports whether the response body needs decompression.
// The transport already handles Content-Encoding; this catches sitemaps
// served as opaque .gz files.
func isGzip(rawURL, contentType string, body []byte) bool {
	if u, err := url.Parse(rawURL); err == nil && strings.HasSuffix(u.Path, ".gz") {
		return true
	}
	if contentType == "application/x-gzip" || contentType == "application/gzip" {
		return true
	}
	return len(body) >= 2 && body[0] == 0x1f && body[1] == 0x8b
}

func gunzip(body []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("opening gzip reader: %w", err)
	}
	defer gz.Close()

	out, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("decompressing body: %w", err)
	}
	return out, nil
}
