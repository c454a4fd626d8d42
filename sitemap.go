package sitemapr

import (
	"context"
	"regexp"
)

// Kind classifies a sitemap document by its XML root element.
type Kind string

const (
	// KindIndex is a <sitemapindex> document listing other sitemaps.
	KindIndex Kind = "index"

	// KindURLSet is a <urlset> document listing page URLs.
	KindURLSet Kind = "urlset"
)

// Sitemap is a single retrieved sitemap document.
// A document is exactly one of index or urlset.
type Sitemap struct {
	// URL the document was fetched from.
	URL string

	// Kind of the document, determined by its root element.
	Kind Kind

	// Entries holds child sitemap URLs for an index, page URLs for a urlset,
	// in document order.
	Entries []string
}

// DiscoveryService discovers and retrieves sitemaps for a website.
type DiscoveryService interface {
	// Discover finds all sitemaps for a site. It probes well-known sitemap
	// paths, then robots.txt Sitemap: directives, then repeats both under
	// the alternate scheme (http<->https), then scrapes the homepage for
	// sitemap-like links. Each step runs only if all prior steps found
	// nothing. Sitemap indexes are expanded recursively; an index
	// contributes its own record followed by each child's.
	//
	// Individual fetch or parse failures are absorbed and logged, never
	// fatal. An empty (non-nil) slice means no sitemaps were found.
	//
	// The filter, if non-nil, is applied to urlset entries.
	Discover(ctx context.Context, baseURL string, filter *URLFilter) ([]*Sitemap, error)
}

// URLFilter specifies patterns for including/excluding urlset entries.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern
	// are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	// Exclude is applied after Include.
	Exclude []*regexp.Regexp
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	// If include patterns exist, URL must match at least one
	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	// Check exclude patterns
	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}
