package sitemapr

// HintScraper extracts sitemap-like links from homepage HTML.
// It is the last-resort discovery strategy, used only after path probing
// and robots.txt have found nothing.
type HintScraper interface {
	// SitemapLinks returns absolute URLs of <link> and anchor targets that
	// look like sitemaps. Relative hrefs are resolved against baseURL.
	// The result preserves document order and contains no duplicates.
	SitemapLinks(html string, baseURL string) []string
}
