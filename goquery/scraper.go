// Package goquery provides HTML-based sitemap hint extraction using the
// goquery library.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitemapr"
)

// Ensure Scraper implements sitemapr.HintScraper.
var _ sitemapr.HintScraper = (*Scraper)(nil)

// Scraper scans homepage HTML for links that look like sitemaps.
// It checks <link> elements and anchors whose href mentions a sitemap,
// which is how sites without robots.txt directives most commonly expose
// them.
type Scraper struct{}

// NewScraper creates a new Scraper.
func NewScraper() *Scraper {
	return &Scraper{}
}

// SitemapLinks returns absolute URLs of sitemap-like links in document
// order, without duplicates. Relative hrefs are resolved against baseURL.
// Unparseable HTML yields no links rather than an error; the homepage
// scrape is a best-effort last resort.
func (s *Scraper) SitemapLinks(html string, baseURL string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	var links []string
	seen := make(map[string]bool)

	doc.Find("link[href], a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || !looksLikeSitemap(href) {
			return
		}

		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}

		u := resolved.String()
		if !seen[u] {
			seen[u] = true
			links = append(links, u)
		}
	})

	return links
}

// looksLikeSitemap reports whether an href plausibly points at a sitemap.
func looksLikeSitemap(href string) bool {
	return strings.Contains(strings.ToLower(href), "sitemap")
}
