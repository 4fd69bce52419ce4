package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/archeion"
	"github.com/fwojciec/archeion/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkService_CreateLink(t *testing.T) {
	t.Parallel()

	t.Run("creates link with generated ID, timestamps and sorted tags", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLinkService(db)
		ctx := context.Background()

		link := &archeion.Link{URL: "https://example.com/post", Tags: []string{"b", "a", "b"}}

		err := svc.CreateLink(ctx, link)
		require.NoError(t, err)

		assert.NotEmpty(t, link.ID, "ID should be generated")
		assert.False(t, link.CreatedAt.IsZero(), "CreatedAt should be set")
		assert.Equal(t, link.CreatedAt, link.UpdatedAt)
		assert.Equal(t, []string{"a", "b"}, link.Tags)
	})

	t.Run("returns error for invalid link", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLinkService(db)

		err := svc.CreateLink(context.Background(), &archeion.Link{})

		require.Error(t, err)
		assert.Equal(t, archeion.EINVALID, archeion.ErrorCode(err))
	})

	t.Run("returns conflict for duplicate URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLinkService(db)
		ctx := context.Background()
		require.NoError(t, svc.CreateLink(ctx, &archeion.Link{URL: "https://example.com/"}))

		dup := &archeion.Link{URL: "https://example.com/"}
		err := svc.CreateLink(ctx, dup)

		require.Error(t, err)
		assert.Equal(t, archeion.ECONFLICT, archeion.ErrorCode(err))
		assert.Empty(t, dup.ID)
	})
}

func TestLinkService_FindLinkByID(t *testing.T) {
	t.Parallel()

	t.Run("returns link with metadata and tags", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLinkService(db)
		ctx := context.Background()

		published := time.Date(2021, 5, 4, 19, 11, 2, 0, time.UTC)
		md := &archeion.Metadata{
			Type:                 "https://schema.org/Article",
			Headline:             "Hello",
			Author:               []archeion.Agent{{Type: archeion.TypePerson, Name: "Jane"}},
			Keywords:             archeion.NewKeywordSet("go"),
			DatePublished:        &published,
			Source:               "https://example.com/post",
			SourceEncodingFormat: "text/html",
			EncodingFormat:       "text/html",
		}
		link := &archeion.Link{URL: "https://example.com/post", Title: "Hello", Metadata: md, Tags: []string{"go"}}
		require.NoError(t, svc.CreateLink(ctx, link))

		found, err := svc.FindLinkByID(ctx, link.ID)

		require.NoError(t, err)
		assert.Equal(t, link.URL, found.URL)
		assert.Equal(t, "Hello", found.Title)
		assert.Equal(t, []string{"go"}, found.Tags)
		require.NotNil(t, found.Metadata)
		assert.Equal(t, md.Type, found.Metadata.Type)
		assert.Equal(t, md.Author, found.Metadata.Author)
		assert.Equal(t, []string{"go"}, found.Metadata.Keywords.Sorted())
		require.NotNil(t, found.Metadata.DatePublished)
		assert.True(t, published.Equal(*found.Metadata.DatePublished))
		assert.True(t, link.CreatedAt.Equal(found.CreatedAt))
	})

	t.Run("returns not found for missing link", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLinkService(db)

		_, err := svc.FindLinkByID(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, archeion.ENOTFOUND, archeion.ErrorCode(err))
	})
}

func TestLinkService_FindLinks(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (*sqlite.LinkService, []*archeion.Link) {
		t.Helper()
		svc := sqlite.NewLinkService(setupTestDB(t))
		var links []*archeion.Link
		for i, tags := range [][]string{{"go"}, {"go", "db"}, {"web"}} {
			link := &archeion.Link{URL: fmt.Sprintf("https://example.com/%d", i), Tags: tags}
			require.NoError(t, svc.CreateLink(context.Background(), link))
			links = append(links, link)
		}
		return svc, links
	}

	t.Run("returns all links newest first", func(t *testing.T) {
		t.Parallel()

		svc, links := setup(t)

		found, err := svc.FindLinks(context.Background(), archeion.LinkFilter{})

		require.NoError(t, err)
		require.Len(t, found, 3)
		assert.Equal(t, links[2].ID, found[0].ID)
		assert.Equal(t, links[0].ID, found[2].ID)
	})

	t.Run("filters by URL", func(t *testing.T) {
		t.Parallel()

		svc, links := setup(t)
		url := links[1].URL

		found, err := svc.FindLinks(context.Background(), archeion.LinkFilter{URL: &url})

		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, links[1].ID, found[0].ID)
		assert.Equal(t, []string{"db", "go"}, found[0].Tags)
	})

	t.Run("filters by tag", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t)
		tag := "go"

		found, err := svc.FindLinks(context.Background(), archeion.LinkFilter{Tag: &tag})

		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc, links := setup(t)

		page, err := svc.FindLinks(context.Background(), archeion.LinkFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, links[1].ID, page[0].ID)

		rest, err := svc.FindLinks(context.Background(), archeion.LinkFilter{Offset: 2})
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, links[0].ID, rest[0].ID)
	})
}

func TestLinkService_UpdateLink(t *testing.T) {
	t.Parallel()

	t.Run("updates fields and replaces tags", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLinkService(db)
		ctx := context.Background()
		link := &archeion.Link{URL: "https://example.com/", Tags: []string{"old"}}
		require.NoError(t, svc.CreateLink(ctx, link))

		title := "New title"
		ldType := "https://schema.org/Article"
		tags := []string{"z", "a"}
		md := &archeion.Metadata{Type: ldType, Keywords: archeion.NewKeywordSet("a")}

		updated, err := svc.UpdateLink(ctx, link.ID, archeion.LinkUpdate{
			Title:    &title,
			LDType:   &ldType,
			Metadata: md,
			Tags:     &tags,
		})
		require.NoError(t, err)
		assert.Equal(t, "New title", updated.Title)
		assert.Equal(t, []string{"a", "z"}, updated.Tags)

		found, err := svc.FindLinkByID(ctx, link.ID)
		require.NoError(t, err)
		assert.Equal(t, "New title", found.Title)
		assert.Equal(t, ldType, found.LDType)
		assert.Equal(t, []string{"a", "z"}, found.Tags)
		require.NotNil(t, found.Metadata)
		assert.Equal(t, ldType, found.Metadata.Type)
	})

	t.Run("keeps tags when not updated", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLinkService(db)
		ctx := context.Background()
		link := &archeion.Link{URL: "https://example.com/", Tags: []string{"keep"}}
		require.NoError(t, svc.CreateLink(ctx, link))
		title := "Title"

		_, err := svc.UpdateLink(ctx, link.ID, archeion.LinkUpdate{Title: &title})
		require.NoError(t, err)

		found, err := svc.FindLinkByID(ctx, link.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"keep"}, found.Tags)
	})

	t.Run("returns not found for missing link", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLinkService(db)

		_, err := svc.UpdateLink(context.Background(), "missing", archeion.LinkUpdate{})

		assert.Equal(t, archeion.ENOTFOUND, archeion.ErrorCode(err))
	})
}

func TestLinkService_DeleteLink(t *testing.T) {
	t.Parallel()

	t.Run("removes link, tags and artifacts", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		links := sqlite.NewLinkService(db)
		artifacts := sqlite.NewArtifactService(db)
		ctx := context.Background()
		link := &archeion.Link{URL: "https://example.com/", Tags: []string{"t"}}
		require.NoError(t, links.CreateLink(ctx, link))
		require.NoError(t, artifacts.UpsertArtifact(ctx, &archeion.Artifact{
			LinkID:     link.ID,
			PluginName: archeion.PluginHTMLMetadata,
			Status:     archeion.ArtifactSucceeded,
		}))

		require.NoError(t, links.DeleteLink(ctx, link.ID))

		_, err := links.FindLinkByID(ctx, link.ID)
		assert.Equal(t, archeion.ENOTFOUND, archeion.ErrorCode(err))
		var tagCount int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM link_tags").Scan(&tagCount))
		assert.Zero(t, tagCount)
		found, err := artifacts.FindArtifacts(ctx, archeion.ArtifactFilter{LinkID: &link.ID})
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("returns not found for missing link", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLinkService(db)

		err := svc.DeleteLink(context.Background(), "missing")

		assert.Equal(t, archeion.ENOTFOUND, archeion.ErrorCode(err))
	})
}
