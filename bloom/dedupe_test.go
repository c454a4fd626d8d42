package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/sitemapr/bloom"
	"github.com/stretchr/testify/assert"
)

func TestDeduper_Seen(t *testing.T) {
	t.Parallel()

	d := bloom.NewDeduper(1000, 0.01)

	// First sighting records the URL
	assert.False(t, d.Seen("https://example.com/page1"))

	// Second sighting reports it as a duplicate
	assert.True(t, d.Seen("https://example.com/page1"))

	// A different URL is still new
	assert.False(t, d.Seen("https://example.com/page2"))
}

func TestDeduper_EstimatedCount(t *testing.T) {
	t.Parallel()

	d := bloom.NewDeduper(1000, 0.01)

	// Empty deduper should have count near 0
	assert.Equal(t, uint(0), d.EstimatedCount())

	_ = d.Seen("https://example.com/page1")
	_ = d.Seen("https://example.com/page2")
	_ = d.Seen("https://example.com/page3")

	// Estimated count should be approximately 3
	count := d.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestDeduper_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	// Seen inserts while probing, so size the filter for both phases.
	d := bloom.NewDeduper(numItems+testProbes, fpRate)

	// Record 10k URLs
	for i := 0; i < numItems; i++ {
		_ = d.Seen(fmt.Sprintf("https://example.com/added/%d", i))
	}

	// Probe with 10k URLs that were NOT recorded; each probe records the
	// URL, so every URL is probed only once.
	falsePositives := 0
	for i := 0; i < testProbes; i++ {
		if d.Seen(fmt.Sprintf("https://example.com/notadded/%d", i)) {
			falsePositives++
		}
	}

	// False positive rate should be approximately 1%
	// Allow up to 2% to account for statistical variance
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
