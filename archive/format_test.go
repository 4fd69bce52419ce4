package archive_test

import (
	"testing"
	"time"

	"github.com/fwojciec/archeion"
	"github.com/fwojciec/archeion/archive"
	"github.com/stretchr/testify/assert"
)

func TestComputeHash(t *testing.T) {
	t.Parallel()

	a := archive.ComputeHash([]byte("hello"))
	assert.Len(t, a, 16)
	assert.Equal(t, a, archive.ComputeHash([]byte("hello")))
	assert.NotEqual(t, a, archive.ComputeHash([]byte("hello!")))
}

func TestFormatMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("writes frontmatter", func(t *testing.T) {
		t.Parallel()

		link := &archeion.Link{
			URL:    "https://example.com/post",
			Title:  "Hello",
			LDType: "https://schema.org/Article",
		}

		got := archive.FormatMarkdown(link, "# Hello\n", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

		assert.Equal(t, "---\nsource: https://example.com/post\ntitle: Hello\ntype: https://schema.org/Article\narchived: 2024-03-01\n---\n\n# Hello\n", got)
	})

	t.Run("omits empty type", func(t *testing.T) {
		t.Parallel()

		got := archive.FormatMarkdown(&archeion.Link{URL: "https://example.com/"}, "body", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

		assert.NotContains(t, got, "type:")
	})
}

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	t.Run("returns URL unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "https://x.com", archive.TruncateURL("https://x.com", 50))
	})

	t.Run("keeps the end of long URLs", func(t *testing.T) {
		t.Parallel()
		got := archive.TruncateURL("https://example.com/very/long/path/to/article", 20)
		assert.Equal(t, "...g/path/to/article", got)
		assert.Len(t, got, 20)
	})

	t.Run("returns empty string for non-positive max", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, archive.TruncateURL("https://example.com", 0))
		assert.Empty(t, archive.TruncateURL("https://example.com", -1))
	})

	t.Run("cuts without ellipsis below four characters", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "htt", archive.TruncateURL("https://example.com", 3))
	})
}
