package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/sitemapr"
)

// DiscoverCmd handles the main discovery operation.
type DiscoverCmd struct {
	URL       string
	Threshold int
	Filter    *sitemapr.URLFilter
}

// Run executes the discovery and prints the results.
// Finding no sitemaps is a normal completion, not an error.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	sitemaps, err := deps.Discovery.Discover(deps.Ctx, c.URL, c.Filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitemapr.ErrorMessage(err))
		return err
	}

	printResults(deps.Stdout, sitemaps, c.Threshold)
	return nil
}

// printResults writes the discovered sitemaps in encounter order, showing
// up to threshold entries per sitemap plus a count of entries omitted. A
// threshold of zero shows counts only; a negative threshold shows everything.
func printResults(w io.Writer, sitemaps []*sitemapr.Sitemap, threshold int) {
	if len(sitemaps) == 0 {
		fmt.Fprintln(w, "No sitemaps found")
		return
	}

	fmt.Fprintf(w, "Found %d sitemap(s):\n", len(sitemaps))
	for i, sm := range sitemaps {
		fmt.Fprintf(w, "\n%d. Sitemap URL: %s\n", i+1, sm.URL)

		noun := "URLs"
		if sm.Kind == sitemapr.KindIndex {
			noun = "sitemaps"
			fmt.Fprintf(w, "   Sitemap index with %d sitemaps:\n", len(sm.Entries))
		} else {
			fmt.Fprintf(w, "   Sitemap with %d URLs:\n", len(sm.Entries))
		}

		shown := sm.Entries
		if threshold >= 0 && len(shown) > threshold {
			shown = shown[:threshold]
		}
		for _, entry := range shown {
			fmt.Fprintf(w, "   - %s\n", entry)
		}
		if omitted := len(sm.Entries) - len(shown); omitted > 0 {
			fmt.Fprintf(w, "   ... and %d more %s\n", omitted, noun)
		}
	}
}
