package main_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/archeion"
	main "github.com/fwojciec/archeion/cmd/archeion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("returns defaults when optional file is missing", func(t *testing.T) {
		t.Parallel()

		c, err := main.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), false)

		require.NoError(t, err)
		assert.Equal(t, main.DefaultConfig(), c)
		assert.Equal(t, 10*time.Second, c.Fetch.Timeout)
		assert.InDelta(t, 1.0, c.Fetch.Rate, 0)
		assert.False(t, c.Fetch.Browser)
		assert.Equal(t, main.ExtractorReadability, c.Markdown.Extractor)
	})

	t.Run("returns error when required file is missing", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), true)
		require.Error(t, err)
	})

	t.Run("reads yaml over defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
database: /data/links.db
schemas:
  disable: [github, Twitter]
jsonld:
  remote_contexts: true
fetch:
  timeout: 30s
  rate: 0.5
  browser: true
markdown:
  extractor: trafilatura
`), 0644))

		c, err := main.LoadConfig(path, true)

		require.NoError(t, err)
		assert.Equal(t, "/data/links.db", c.Database)
		assert.Equal(t, main.DefaultConfig().ArchiveDir, c.ArchiveDir)
		assert.True(t, c.JSONLD.RemoteContexts)
		assert.Equal(t, 30*time.Second, c.Fetch.Timeout)
		assert.InDelta(t, 0.5, c.Fetch.Rate, 0)
		assert.True(t, c.Fetch.Browser)
		assert.Equal(t, main.ExtractorTrafilatura, c.Markdown.Extractor)

		schemas, err := c.EnabledSchemas()
		require.NoError(t, err)
		assert.Equal(t, []archeion.Schema{
			archeion.SchemaJSONLD,
			archeion.SchemaHTML,
			archeion.SchemaOpenGraph,
			archeion.SchemaMicrodata,
		}, schemas)
	})

	t.Run("rejects unknown schema", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("schemas:\n  enable: [rdfa]\n"), 0644))

		_, err := main.LoadConfig(path, true)

		assert.Equal(t, archeion.EINVALID, archeion.ErrorCode(err))
	})

	t.Run("rejects unknown markdown extractor", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("markdown:\n  extractor: boilerpipe\n"), 0644))

		_, err := main.LoadConfig(path, true)

		assert.Equal(t, archeion.EINVALID, archeion.ErrorCode(err))
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("database: [unclosed"), 0644))

		_, err := main.LoadConfig(path, true)
		require.Error(t, err)
	})
}

func TestConfig_EnabledSchemas(t *testing.T) {
	t.Parallel()

	t.Run("all schemas by default", func(t *testing.T) {
		t.Parallel()

		c := main.DefaultConfig()
		schemas, err := c.EnabledSchemas()

		require.NoError(t, err)
		assert.Equal(t, archeion.Precedence, schemas)
	})

	t.Run("enable restricts and keeps precedence order", func(t *testing.T) {
		t.Parallel()

		c := main.DefaultConfig()
		c.Schemas.Enable = []string{"opengraph", "json-ld"}
		schemas, err := c.EnabledSchemas()

		require.NoError(t, err)
		assert.Equal(t, []archeion.Schema{archeion.SchemaJSONLD, archeion.SchemaOpenGraph}, schemas)
	})

	t.Run("disable wins over enable", func(t *testing.T) {
		t.Parallel()

		c := main.DefaultConfig()
		c.Schemas.Enable = []string{"html", "json-ld"}
		c.Schemas.Disable = []string{"json-ld"}
		schemas, err := c.EnabledSchemas()

		require.NoError(t, err)
		assert.Equal(t, []archeion.Schema{archeion.SchemaHTML}, schemas)
	})
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"ARCHEION_DB":      "/tmp/a.db",
		"ARCHEION_ARCHIVE": "/tmp/archive",
	}
	c := main.DefaultConfig()
	c.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "/tmp/a.db", c.Database)
	assert.Equal(t, "/tmp/archive", c.ArchiveDir)

	d := main.DefaultConfig()
	d.ApplyEnv(func(string) string { return "" })
	assert.Equal(t, main.DefaultConfig(), d)
}
