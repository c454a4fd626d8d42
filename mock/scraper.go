package mock

import "github.com/fwojciec/sitemapr"

var _ sitemapr.HintScraper = (*HintScraper)(nil)

// HintScraper is a mock implementation of sitemapr.HintScraper.
type HintScraper struct {
	SitemapLinksFn func(html string, baseURL string) []string
}

func (s *HintScraper) SitemapLinks(html string, baseURL string) []string {
	return s.SitemapLinksFn(html, baseURL)
}
