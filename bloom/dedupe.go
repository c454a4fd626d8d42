// Package bloom provides URL deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// DefaultCapacity sizes the filter for the number of page URLs a large
// sitemap tree can realistically list.
const DefaultCapacity = 1_000_000

// DefaultFalsePositiveRate keeps accidental drops of unseen URLs rare.
const DefaultFalsePositiveRate = 1e-6

// Deduper tracks page URLs already reported so the same URL listed by two
// sitemaps is only reported once.
type Deduper struct {
	f *bloom.BloomFilter
}

// NewDeduper creates a Deduper sized for n expected URLs with the given
// false positive rate.
func NewDeduper(n uint, fpRate float64) *Deduper {
	return &Deduper{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen records the URL and returns true if it was probably seen before.
// False positives are possible; false negatives are not.
func (d *Deduper) Seen(url string) bool {
	return d.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of URLs recorded.
func (d *Deduper) EstimatedCount() uint {
	return uint(d.f.ApproximatedSize())
}
