package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/archeion"
	"github.com/fwojciec/archeion/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestLink(t *testing.T, db *sqlite.DB, url string) *archeion.Link {
	t.Helper()
	link := &archeion.Link{URL: url}
	require.NoError(t, sqlite.NewLinkService(db).CreateLink(context.Background(), link))
	return link
}

func TestArtifactService_UpsertArtifact(t *testing.T) {
	t.Parallel()

	t.Run("creates artifact", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		link := createTestLink(t, db, "https://example.com/")
		svc := sqlite.NewArtifactService(db)

		artifact := &archeion.Artifact{
			LinkID:      link.ID,
			PluginName:  archeion.PluginHTMLMetadata,
			OutputPath:  "/archive/" + link.ID + "/html_metadata.json",
			Status:      archeion.ArtifactSucceeded,
			ContentHash: "abc",
		}

		err := svc.UpsertArtifact(context.Background(), artifact)

		require.NoError(t, err)
		assert.NotEmpty(t, artifact.ID)
		assert.False(t, artifact.CreatedAt.IsZero())
	})

	t.Run("replaces artifact for same link and plugin", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		link := createTestLink(t, db, "https://example.com/")
		svc := sqlite.NewArtifactService(db)
		ctx := context.Background()

		first := &archeion.Artifact{LinkID: link.ID, PluginName: archeion.PluginMarkdown, Status: archeion.ArtifactFailed}
		require.NoError(t, svc.UpsertArtifact(ctx, first))
		second := &archeion.Artifact{
			LinkID:      link.ID,
			PluginName:  archeion.PluginMarkdown,
			OutputPath:  "dom.md",
			Status:      archeion.ArtifactSucceeded,
			ContentHash: "def",
		}
		require.NoError(t, svc.UpsertArtifact(ctx, second))

		assert.Equal(t, first.ID, second.ID)
		found, err := svc.FindArtifacts(ctx, archeion.ArtifactFilter{LinkID: &link.ID})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, archeion.ArtifactSucceeded, found[0].Status)
		assert.Equal(t, "dom.md", found[0].OutputPath)
		assert.Equal(t, "def", found[0].ContentHash)
	})

	t.Run("returns error for invalid artifact", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewArtifactService(db)

		err := svc.UpsertArtifact(context.Background(), &archeion.Artifact{})

		assert.Equal(t, archeion.EINVALID, archeion.ErrorCode(err))
	})

	t.Run("returns not found for missing link", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewArtifactService(db)

		err := svc.UpsertArtifact(context.Background(), &archeion.Artifact{
			LinkID:     "missing",
			PluginName: archeion.PluginMarkdown,
			Status:     archeion.ArtifactPending,
		})

		assert.Equal(t, archeion.ENOTFOUND, archeion.ErrorCode(err))
	})
}

func TestArtifactService_FindArtifacts(t *testing.T) {
	t.Parallel()

	t.Run("filters by link and plugin", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		a := createTestLink(t, db, "https://example.com/a")
		b := createTestLink(t, db, "https://example.com/b")
		svc := sqlite.NewArtifactService(db)
		ctx := context.Background()
		for _, link := range []*archeion.Link{a, b} {
			for _, plugin := range []string{archeion.PluginHTMLMetadata, archeion.PluginMarkdown} {
				require.NoError(t, svc.UpsertArtifact(ctx, &archeion.Artifact{
					LinkID:     link.ID,
					PluginName: plugin,
					Status:     archeion.ArtifactSucceeded,
				}))
			}
		}

		all, err := svc.FindArtifacts(ctx, archeion.ArtifactFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 4)

		byLink, err := svc.FindArtifacts(ctx, archeion.ArtifactFilter{LinkID: &a.ID})
		require.NoError(t, err)
		require.Len(t, byLink, 2)
		assert.Equal(t, archeion.PluginHTMLMetadata, byLink[0].PluginName)
		assert.Equal(t, archeion.PluginMarkdown, byLink[1].PluginName)

		plugin := archeion.PluginMarkdown
		byBoth, err := svc.FindArtifacts(ctx, archeion.ArtifactFilter{LinkID: &b.ID, PluginName: &plugin})
		require.NoError(t, err)
		require.Len(t, byBoth, 1)
		assert.Equal(t, b.ID, byBoth[0].LinkID)
	})
}
