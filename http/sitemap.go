package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitemapr"
	"github.com/fwojciec/sitemapr/bloom"
)

// candidatePaths are the well-known sitemap locations probed first, in
// order. Every path is tried; a site may expose more than one.
var candidatePaths = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/sitemap-index.xml",
	"/sitemap_index.xml.gz",
	"/sitemap.xml.gz",
}

// Ensure DiscoveryService implements sitemapr.DiscoveryService.
var _ sitemapr.DiscoveryService = (*DiscoveryService)(nil)

// DiscoveryService discovers and retrieves sitemaps via HTTP.
//
// The fallback chain: well-known candidate paths, then robots.txt
// Sitemap: directives, then both again under the alternate scheme
// (http<->https), then a homepage scrape for sitemap-like links. Each step
// runs only when all prior steps found nothing. Individual fetch and parse
// failures advance the chain; only context cancellation is fatal.
type DiscoveryService struct {
	fetcher sitemapr.Fetcher
	scraper sitemapr.HintScraper
	limiter *Limiter
	logger  *slog.Logger

	limiterSet bool
}

// DiscoveryOption configures a DiscoveryService.
type DiscoveryOption func(*DiscoveryService)

// WithScraper sets the homepage hint scraper used as the last-resort
// discovery strategy. Without one, the homepage scrape step is skipped.
func WithScraper(hs sitemapr.HintScraper) DiscoveryOption {
	return func(s *DiscoveryService) {
		s.scraper = hs
	}
}

// WithLimiter sets the probe pacer. Pass nil to disable pacing.
// Defaults to NewLimiter(DefaultProbeRPS) if not specified.
func WithLimiter(l *Limiter) DiscoveryOption {
	return func(s *DiscoveryService) {
		s.limiter = l
		s.limiterSet = true
	}
}

// WithLogger sets the logger for absorbed fetch/parse failures.
// Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) DiscoveryOption {
	return func(s *DiscoveryService) {
		s.logger = logger
	}
}

// NewDiscoveryService creates a new DiscoveryService using the given
// fetcher. If fetcher is nil, a default Fetcher is used.
func NewDiscoveryService(fetcher sitemapr.Fetcher, opts ...DiscoveryOption) *DiscoveryService {
	s := &DiscoveryService{fetcher: fetcher}
	for _, opt := range opts {
		opt(s)
	}

	if s.fetcher == nil {
		s.fetcher = NewFetcher()
	}
	if !s.limiterSet {
		s.limiter = NewLimiter(DefaultProbeRPS)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return s
}

// discovery holds per-call state: a seen-set preventing cycles and
// duplicate fetches, body hashes catching the same document served at
// several paths, and a Bloom filter deduplicating page URLs across
// sitemaps.
type discovery struct {
	filter *sitemapr.URLFilter
	seen   map[string]bool
	bodies map[uint64]bool
	pages  *bloom.Deduper
}

// Discover finds all sitemaps for a site.
// Returns an empty (non-nil) slice when nothing is found; the only error
// conditions are an invalid base URL and context cancellation.
func (s *DiscoveryService) Discover(ctx context.Context, baseURL string, filter *sitemapr.URLFilter) ([]*sitemapr.Sitemap, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, sitemapr.Errorf(sitemapr.EINVALID, "invalid base URL %q", baseURL)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, sitemapr.Errorf(sitemapr.EINVALID, "base URL %q must use http or https", baseURL)
	}
	if base.Host == "" {
		return nil, sitemapr.Errorf(sitemapr.EINVALID, "base URL %q has no host", baseURL)
	}

	d := &discovery{
		filter: filter,
		seen:   make(map[string]bool),
		bodies: make(map[uint64]bool),
		pages:  bloom.NewDeduper(bloom.DefaultCapacity, bloom.DefaultFalsePositiveRate),
	}

	results := []*sitemapr.Sitemap{}

	// Probe the original scheme first, the alternate one only if it
	// yielded nothing.
	for _, b := range []*url.URL{base, alternateScheme(base)} {
		found, err := s.probeCandidates(ctx, b, d)
		if err != nil {
			return nil, err
		}
		results = append(results, found...)
		if len(results) > 0 {
			break
		}

		found, err = s.probeRobots(ctx, b, d)
		if err != nil {
			return nil, err
		}
		results = append(results, found...)
		if len(results) > 0 {
			break
		}
	}

	// Last resort: scrape the homepage for sitemap-like links.
	if len(results) == 0 && s.scraper != nil {
		found, err := s.scrapeHomepage(ctx, base, d)
		if err != nil {
			return nil, err
		}
		results = append(results, found...)
	}

	return results, nil
}

// probeCandidates tries every well-known sitemap path at the domain root.
func (s *DiscoveryService) probeCandidates(ctx context.Context, base *url.URL, d *discovery) ([]*sitemapr.Sitemap, error) {
	root := *base
	root.Path = ""

	var results []*sitemapr.Sitemap
	for _, p := range candidatePaths {
		target := root.ResolveReference(&url.URL{Path: p}).String()
		s.logger.Debug("probing sitemap path", "url", target)

		found, err := s.retrieve(ctx, target, d)
		if err != nil {
			return nil, err
		}
		results = append(results, found...)
	}
	return results, nil
}

// probeRobots fetches robots.txt and retrieves every Sitemap: directive.
func (s *DiscoveryService) probeRobots(ctx context.Context, base *url.URL, d *discovery) ([]*sitemapr.Sitemap, error) {
	root := *base
	root.Path = ""
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()

	if err := s.limiter.Wait(ctx, root.Host); err != nil {
		return nil, err
	}

	body, err := s.fetcher.Fetch(ctx, robotsURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Debug("robots.txt fetch failed", "url", robotsURL, "err", err)
		return nil, nil
	}

	var results []*sitemapr.Sitemap
	for _, directive := range parseRobotsSitemaps(string(body)) {
		s.logger.Debug("robots.txt sitemap directive", "url", directive)

		found, err := s.retrieve(ctx, directive, d)
		if err != nil {
			return nil, err
		}
		results = append(results, found...)
	}
	return results, nil
}

// parseRobotsSitemaps extracts Sitemap: directives from robots.txt.
func parseRobotsSitemaps(content string) []string {
	var sitemaps []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Case-insensitive check for Sitemap: directive
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			sitemapURL := strings.TrimSpace(line[8:]) // len("sitemap:") == 8
			if sitemapURL != "" {
				sitemaps = append(sitemaps, sitemapURL)
			}
		}
	}
	return sitemaps
}

// scrapeHomepage fetches the base URL and retrieves any sitemap-like
// links found in its HTML.
func (s *DiscoveryService) scrapeHomepage(ctx context.Context, base *url.URL, d *discovery) ([]*sitemapr.Sitemap, error) {
	if err := s.limiter.Wait(ctx, base.Host); err != nil {
		return nil, err
	}

	body, err := s.fetcher.Fetch(ctx, base.String())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Debug("homepage fetch failed", "url", base.String(), "err", err)
		return nil, nil
	}

	var results []*sitemapr.Sitemap
	for _, link := range s.scraper.SitemapLinks(string(body), base.String()) {
		s.logger.Debug("homepage sitemap hint", "url", link)

		found, err := s.retrieve(ctx, link, d)
		if err != nil {
			return nil, err
		}
		results = append(results, found...)
	}
	return results, nil
}

// retrieve fetches and parses a single sitemap URL, expanding indexes
// recursively. Fetch and parse failures are absorbed; only context
// cancellation propagates.
func (s *DiscoveryService) retrieve(ctx context.Context, sitemapURL string, d *discovery) ([]*sitemapr.Sitemap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Avoid processing the same sitemap twice
	if d.seen[sitemapURL] {
		return nil, nil
	}
	d.seen[sitemapURL] = true

	if err := s.limiter.Wait(ctx, hostOf(sitemapURL)); err != nil {
		return nil, err
	}

	body, err := s.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Debug("sitemap fetch failed", "url", sitemapURL, "err", err)
		return nil, nil
	}

	// The same document is often served at several candidate paths
	// (sitemap.xml and sitemap_index.xml frequently alias each other).
	sum := xxhash.Sum64(body)
	if d.bodies[sum] {
		s.logger.Debug("duplicate sitemap body", "url", sitemapURL)
		return nil, nil
	}
	d.bodies[sum] = true

	root, err := parseSitemapXML(body)
	if err != nil {
		s.logger.Warn("sitemap parse failed", "url", sitemapURL, "err", err)
		return nil, nil
	}

	if root.Tag == "sitemapindex" {
		return s.expandIndex(ctx, sitemapURL, root, d)
	}

	return []*sitemapr.Sitemap{parseURLSet(sitemapURL, root, d)}, nil
}

// parseSitemapXML parses sitemap bytes and returns the root element.
// Malformed input is retried once with invalid UTF-8 stripped; some
// sitemaps in the wild embed stray bytes.
func parseSitemapXML(body []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		clean := strings.ToValidUTF8(string(body), "")
		doc = etree.NewDocument()
		if err := doc.ReadFromString(clean); err != nil {
			return nil, fmt.Errorf("parsing sitemap XML: %w", err)
		}
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}
	return root, nil
}

// expandIndex records a <sitemapindex> document and retrieves each child
// sitemap. One bad child does not abort the rest.
func (s *DiscoveryService) expandIndex(ctx context.Context, indexURL string, root *etree.Element, d *discovery) ([]*sitemapr.Sitemap, error) {
	index := &sitemapr.Sitemap{URL: indexURL, Kind: sitemapr.KindIndex}
	for _, el := range root.SelectElements("sitemap") {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		child := strings.TrimSpace(loc.Text())
		if child != "" {
			index.Entries = append(index.Entries, child)
		}
	}

	results := []*sitemapr.Sitemap{index}
	for _, child := range index.Entries {
		found, err := s.retrieve(ctx, child, d)
		if err != nil {
			return nil, err
		}
		results = append(results, found...)
	}
	return results, nil
}

// parseURLSet records a <urlset> document, applying the URL filter and
// dropping page URLs already reported by an earlier sitemap.
func parseURLSet(sitemapURL string, root *etree.Element, d *discovery) *sitemapr.Sitemap {
	sm := &sitemapr.Sitemap{URL: sitemapURL, Kind: sitemapr.KindURLSet}
	for _, el := range root.SelectElements("url") {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		u := strings.TrimSpace(loc.Text())
		if u == "" || !d.filter.Match(u) {
			continue
		}
		if d.pages.Seen(u) {
			continue
		}
		sm.Entries = append(sm.Entries, u)
	}
	return sm
}

// alternateScheme returns the base URL with http and https swapped.
func alternateScheme(base *url.URL) *url.URL {
	alt := *base
	if alt.Scheme == "http" {
		alt.Scheme = "https"
	} else {
		alt.Scheme = "http"
	}
	return &alt
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
