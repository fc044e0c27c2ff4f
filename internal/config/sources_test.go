package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapshot-microservice/internal/config"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSources(t *testing.T) {
	t.Run("full descriptor", func(t *testing.T) {
		path := writeCatalog(t, `
sources:
  - id: osm-intl
    static: true
    formats: [png, jpeg]
    maxwidth: 2048
    maxheight: 2048
    minzoom: 0
    maxzoom: 19
    tile_uri: osm-intl
`)
		registry, err := config.LoadSources(path)
		require.NoError(t, err)
		require.Equal(t, 1, registry.Len())

		src, ok := registry.Get("osm-intl")
		require.True(t, ok)
		assert.True(t, src.Static)
		assert.Equal(t, 2048, src.MaxWidth)
		assert.Equal(t, 19, src.MaxZoom)
		assert.True(t, src.FormatAllowed("jpeg"))
	})

	t.Run("defaults applied", func(t *testing.T) {
		path := writeCatalog(t, `
sources:
  - id: osm
    static: true
`)
		registry, err := config.LoadSources(path)
		require.NoError(t, err)

		src, ok := registry.Get("osm")
		require.True(t, ok)
		assert.Equal(t, 1280, src.MaxWidth)
		assert.Equal(t, 1024, src.MaxHeight)
		assert.Equal(t, 18, src.MaxZoom)
		assert.Equal(t, []string{"png"}, src.Formats)
		assert.Equal(t, "osm", src.TileURI)
	})

	t.Run("missing id rejected", func(t *testing.T) {
		path := writeCatalog(t, `
sources:
  - static: true
`)
		_, err := config.LoadSources(path)
		assert.Error(t, err)
	})

	t.Run("unknown format rejected", func(t *testing.T) {
		path := writeCatalog(t, `
sources:
  - id: osm
    formats: [webp]
`)
		_, err := config.LoadSources(path)
		assert.Error(t, err)
	})

	t.Run("empty catalog rejected", func(t *testing.T) {
		path := writeCatalog(t, "sources: []\n")
		_, err := config.LoadSources(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadSources("/no/such/catalog.yaml")
		assert.Error(t, err)
	})
}
