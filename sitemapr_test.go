package sitemapr_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/sitemapr"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := sitemapr.Errorf(sitemapr.EINVALID, "invalid base URL %q", "::bad")

	assert.Equal(t, sitemapr.EINVALID, sitemapr.ErrorCode(err))
	assert.Equal(t, "invalid base URL \"::bad\"", sitemapr.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitemapr.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitemapr.ErrorMessage(nil))
}

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	t.Run("nil filter passes everything", func(t *testing.T) {
		t.Parallel()

		var f *sitemapr.URLFilter
		assert.True(t, f.Match("https://example.com/page"))
	})

	t.Run("include requires at least one match", func(t *testing.T) {
		t.Parallel()

		f := &sitemapr.URLFilter{
			Include: []*regexp.Regexp{regexp.MustCompile(`/docs/`)},
		}
		assert.True(t, f.Match("https://example.com/docs/intro"))
		assert.False(t, f.Match("https://example.com/blog/post"))
	})

	t.Run("exclude wins over include", func(t *testing.T) {
		t.Parallel()

		f := &sitemapr.URLFilter{
			Include: []*regexp.Regexp{regexp.MustCompile(`/docs/`)},
			Exclude: []*regexp.Regexp{regexp.MustCompile(`/docs/archive/`)},
		}
		assert.True(t, f.Match("https://example.com/docs/intro"))
		assert.False(t, f.Match("https://example.com/docs/archive/old"))
	})
}
