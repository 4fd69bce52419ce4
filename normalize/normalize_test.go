package normalize_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/archeion"
	"github.com/fwojciec/archeion/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHTML(t *testing.T) {
	t.Parallel()

	t.Run("maps title, description, keywords and author", func(t *testing.T) {
		t.Parallel()

		f := normalize.NormalizeHTML(map[string]string{
			"title":       "Example",
			"description": "desc",
			"keywords":    "go, metadata ,, archive",
			"author":      "Jane Doe",
		})

		assert.Equal(t, archeion.Values{"Example"}, f.Headline)
		assert.Equal(t, archeion.Values{"desc"}, f.Description)
		assert.Equal(t, []string{"archive", "go", "metadata"}, f.Keywords.Sorted())
		assert.Equal(t, []archeion.Agent{{Type: archeion.TypePerson, Name: "Jane Doe"}}, f.Author)
		assert.Empty(t, f.Type)
	})

	t.Run("tolerates missing keys", func(t *testing.T) {
		t.Parallel()

		f := normalize.NormalizeHTML(map[string]string{})

		assert.True(t, f.IsEmpty())
	})

	t.Run("does not modify the fragment", func(t *testing.T) {
		t.Parallel()

		frag := map[string]string{"title": " Example ", "keywords": "a,b"}

		normalize.NormalizeHTML(frag)

		assert.Equal(t, map[string]string{"title": " Example ", "keywords": "a,b"}, frag)
	})
}

func TestNormalizeOpenGraph(t *testing.T) {
	t.Parallel()

	t.Run("maps tags to fields", func(t *testing.T) {
		t.Parallel()

		f := normalize.NormalizeOpenGraph(&archeion.OpenGraphItem{Properties: []archeion.OpenGraphProperty{
			{Tag: "og:url", Value: "https://example.com/post"},
			{Tag: "og:title", Value: "Title"},
			{Tag: "og:description", Value: "Description"},
			{Tag: "og:site_name", Value: "Example"},
			{Tag: "og:type", Value: "article"},
			{Tag: "article:author", Value: "Jane"},
			{Tag: "article:published_time", Value: "2021-07-11T01:15:44Z"},
			{Tag: "og:image", Value: "https://example.com/a.png"},
		}})

		assert.Equal(t, "https://schema.org/Article", f.Type)
		assert.Equal(t, archeion.Values{"https://example.com/post"}, f.Source)
		assert.Equal(t, archeion.Values{"Title"}, f.Headline)
		assert.Equal(t, archeion.Values{"Description"}, f.Description)
		assert.Equal(t, []archeion.Agent{{Type: archeion.TypeOrganization, Name: "Example"}}, f.Publisher)
		assert.Equal(t, []archeion.Agent{{Type: archeion.TypePerson, Name: "Jane"}}, f.Author)
		assert.Equal(t, []time.Time{time.Date(2021, 7, 11, 1, 15, 44, 0, time.UTC)}, f.DatePublished)
	})

	t.Run("accumulates repeated tags", func(t *testing.T) {
		t.Parallel()

		f := normalize.NormalizeOpenGraph(&archeion.OpenGraphItem{Properties: []archeion.OpenGraphProperty{
			{Tag: "article:author", Value: "Jane"},
			{Tag: "article:author", Value: "John"},
			{Tag: "og:tag", Value: " go "},
			{Tag: "og:video:tag", Value: "video"},
			{Tag: "og:book:tag", Value: "book"},
		}})

		assert.Equal(t, []archeion.Agent{
			{Type: archeion.TypePerson, Name: "Jane"},
			{Type: archeion.TypePerson, Name: "John"},
		}, f.Author)
		assert.Equal(t, []string{"book", "go", "video"}, f.Keywords.Sorted())
	})

	t.Run("defaults type to CreativeWork", func(t *testing.T) {
		t.Parallel()

		f := normalize.NormalizeOpenGraph(&archeion.OpenGraphItem{Properties: []archeion.OpenGraphProperty{
			{Tag: "og:title", Value: "Title"},
		}})

		assert.Equal(t, archeion.TypeCreativeWork, f.Type)
	})

	t.Run("drops unparseable dates", func(t *testing.T) {
		t.Parallel()

		f := normalize.NormalizeOpenGraph(&archeion.OpenGraphItem{Properties: []archeion.OpenGraphProperty{
			{Tag: "og:published_time", Value: "yesterday"},
		}})

		assert.Empty(t, f.DatePublished)
	})
}

func TestOpenGraphType(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"article":             "https://schema.org/Article",
		"music.song":          "https://schema.org/MusicRecording",
		"music.album":         "https://schema.org/MusicAlbum",
		"music.playlist":      "https://schema.org/MusicPlaylist",
		"music.radio_station": "https://schema.org/Organization",
		"video.movie":         "https://schema.org/Movie",
		"video.episode":       "https://schema.org/Episode",
		"video.tv_show":       "https://schema.org/TVSeries",
		"video.other":         "https://schema.org/VideoObject",
		"book":                "https://schema.org/Book",
		"profile":             "https://schema.org/Person",
		"object":              "https://schema.org/Thing",
		"website":             archeion.TypeCreativeWork,
		"":                    archeion.TypeCreativeWork,
	}

	for in, want := range tests {
		assert.Equal(t, want, normalize.OpenGraphType(in), in)
	}
}

func TestNormalizeTwitter(t *testing.T) {
	t.Parallel()

	t.Run("maps card tags and handles", func(t *testing.T) {
		t.Parallel()

		f := normalize.NormalizeTwitter(map[string]string{
			"title":       "Title",
			"description": "Description",
			"url":         "https://example.com/post",
			"creator":     "@jane",
			"site":        "@example",
		})

		assert.Equal(t, archeion.Values{"Title"}, f.Headline)
		assert.Equal(t, archeion.Values{"Description"}, f.Description)
		assert.Equal(t, archeion.Values{"https://example.com/post"}, f.Source)
		assert.Equal(t, []archeion.Agent{{Type: archeion.TypePerson, URL: "https://twitter.com/jane"}}, f.Author)
		assert.Equal(t, []archeion.Agent{{Type: archeion.TypeOrganization, URL: "https://twitter.com/example"}}, f.Publisher)
	})

	t.Run("falls back to id tags", func(t *testing.T) {
		t.Parallel()

		f := normalize.NormalizeTwitter(map[string]string{"creator:id": "12345", "site:id": "67890"})

		assert.Equal(t, []archeion.Agent{{Type: archeion.TypePerson, URL: "https://twitter.com/12345"}}, f.Author)
		assert.Equal(t, []archeion.Agent{{Type: archeion.TypeOrganization, URL: "https://twitter.com/67890"}}, f.Publisher)
	})

	t.Run("tolerates missing keys", func(t *testing.T) {
		t.Parallel()

		assert.True(t, normalize.NormalizeTwitter(nil).IsEmpty())
	})
}

func TestNormalizeMicrodata(t *testing.T) {
	t.Parallel()

	t.Run("maps item properties", func(t *testing.T) {
		t.Parallel()

		f := normalize.NormalizeMicrodata(&archeion.MicrodataItem{
			Type: "http://schema.org/VideoObject",
			Properties: map[string]any{
				"name":          "Video",
				"description":   "A video",
				"url":           "https://example.com/watch",
				"author":        "Jane",
				"datePublished": "2020-01-31",
			},
		})

		assert.Equal(t, "http://schema.org/VideoObject", f.Type)
		assert.Equal(t, archeion.Values{"Video"}, f.Headline)
		assert.Equal(t, archeion.Values{"A video"}, f.Description)
		assert.Equal(t, archeion.Values{"https://example.com/watch"}, f.Source)
		assert.Equal(t, []archeion.Agent{{Type: archeion.TypePerson, Name: "Jane"}}, f.Author)
		assert.Equal(t, []time.Time{time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)}, f.DatePublished)
		assert.Equal(t, archeion.DefaultEncodingFormat, f.SourceEncodingFormat)
	})

	t.Run("flattens nested author items", func(t *testing.T) {
		t.Parallel()

		f := normalize.NormalizeMicrodata(&archeion.MicrodataItem{
			Type: "http://schema.org/VideoObject",
			Properties: map[string]any{
				"author": &archeion.MicrodataItem{
					Type:       "http://schema.org/Person",
					Properties: map[string]any{"name": "Jane", "url": "https://example.com/jane"},
				},
			},
		})

		assert.Equal(t, []archeion.Agent{{
			Type: "http://schema.org/Person",
			Name: "Jane",
			URL:  "https://example.com/jane",
		}}, f.Author)
	})

	t.Run("defaults nested author type to Person", func(t *testing.T) {
		t.Parallel()

		f := normalize.NormalizeMicrodata(&archeion.MicrodataItem{
			Properties: map[string]any{
				"author": &archeion.MicrodataItem{Properties: map[string]any{"name": "Jane"}},
			},
		})

		require.Len(t, f.Author, 1)
		assert.Equal(t, archeion.TypePerson, f.Author[0].Type)
	})

	t.Run("reads the first of repeated properties", func(t *testing.T) {
		t.Parallel()

		f := normalize.NormalizeMicrodata(&archeion.MicrodataItem{
			Properties: map[string]any{"name": []any{"First", "Second"}},
		})

		assert.Equal(t, archeion.Values{"First"}, f.Headline)
	})
}

func TestNormalizeGitHub(t *testing.T) {
	t.Parallel()

	f := normalize.NormalizeGitHub([]string{"python", " cli ", ""})

	assert.Equal(t, []string{"cli", "python"}, f.Keywords.Sorted())
	assert.Empty(t, f.Headline)
}

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	raw := &archeion.RawMetadata{
		HTML:      []map[string]string{{"title": "First"}, {"title": "Second"}},
		Twitter:   []map[string]string{{"title": "Tweet"}},
		OpenGraph: []*archeion.OpenGraphItem{{Properties: []archeion.OpenGraphProperty{{Tag: "og:title", Value: "OG"}}}},
		Microdata: []*archeion.MicrodataItem{{Properties: map[string]any{"name": "Item"}}},
		GitHub:    []string{"go"},
	}

	t.Run("reads the first fragment of each schema", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			normalizer *normalize.Normalizer
			schema     archeion.Schema
			headline   archeion.Values
		}{
			{normalize.NewHTMLNormalizer(), archeion.SchemaHTML, archeion.Values{"First"}},
			{normalize.NewTwitterNormalizer(), archeion.SchemaTwitter, archeion.Values{"Tweet"}},
			{normalize.NewOpenGraphNormalizer(), archeion.SchemaOpenGraph, archeion.Values{"OG"}},
			{normalize.NewMicrodataNormalizer(), archeion.SchemaMicrodata, archeion.Values{"Item"}},
			{normalize.NewGitHubNormalizer(), archeion.SchemaGitHub, nil},
		}

		for _, tt := range tests {
			f, err := tt.normalizer.Normalize(context.Background(), raw)

			require.NoError(t, err)
			assert.Equal(t, tt.schema, tt.normalizer.Schema())
			assert.Equal(t, tt.headline, f.Headline, string(tt.schema))
		}
	})

	t.Run("returns empty fields without fragments", func(t *testing.T) {
		t.Parallel()

		for _, n := range []*normalize.Normalizer{
			normalize.NewHTMLNormalizer(),
			normalize.NewTwitterNormalizer(),
			normalize.NewOpenGraphNormalizer(),
			normalize.NewMicrodataNormalizer(),
			normalize.NewGitHubNormalizer(),
		} {
			f, err := n.Normalize(context.Background(), &archeion.RawMetadata{})

			require.NoError(t, err)
			assert.True(t, f.IsEmpty(), string(n.Schema()))
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		n := normalize.NewOpenGraphNormalizer()

		first, err := n.Normalize(context.Background(), raw)
		require.NoError(t, err)
		second, err := n.Normalize(context.Background(), raw)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("returns context error when cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := normalize.NewHTMLNormalizer().Normalize(ctx, raw)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
