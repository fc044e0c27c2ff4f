package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapshot-microservice/internal/pkg/errors"
	"github.com/snapshot-microservice/internal/usecase/dto"
)

func TestParseSnapshotPath(t *testing.T) {
	t.Run("basic segment", func(t *testing.T) {
		req, err := dto.ParseSnapshotPath("osm-intl,5,40.7,-74.0,600x400.png")
		require.NoError(t, err)
		assert.Equal(t, "osm-intl", req.SourceID)
		assert.Equal(t, "5", req.Zoom)
		assert.Equal(t, "40.7", req.Lat)
		assert.Equal(t, "-74.0", req.Lon)
		assert.Equal(t, "600", req.Width)
		assert.Equal(t, "400", req.Height)
		assert.Equal(t, "", req.Scale)
		assert.Equal(t, "png", req.Format)
	})

	t.Run("with scale suffix", func(t *testing.T) {
		req, err := dto.ParseSnapshotPath("osm-intl,5,40.7,-74.0,600x400@1.5x.png")
		require.NoError(t, err)
		assert.Equal(t, "1.5", req.Scale)
		assert.Equal(t, "600", req.Width)
		assert.Equal(t, "400", req.Height)
		assert.Equal(t, "png", req.Format)
	})

	t.Run("auto placeholders survive as strings", func(t *testing.T) {
		req, err := dto.ParseSnapshotPath("osm-intl,auto,auto,auto,600x400.png")
		require.NoError(t, err)
		assert.Equal(t, "auto", req.Zoom)
		assert.Equal(t, "auto", req.Lat)
		assert.Equal(t, "auto", req.Lon)
	})

	t.Run("garbage values pass through to the validator", func(t *testing.T) {
		// Разбор пути не классифицирует значения - это дело валидатора
		req, err := dto.ParseSnapshotPath("osm-intl,zzz,1e99,nope,600x400.jpeg")
		require.NoError(t, err)
		assert.Equal(t, "zzz", req.Zoom)
		assert.Equal(t, "jpeg", req.Format)
	})

	t.Run("malformed segments rejected", func(t *testing.T) {
		for _, raw := range []string{
			"",
			"osm-intl",
			"osm-intl,5,40.7,-74.0",
			"osm-intl,5,40.7,-74.0,600.png",
			"osm-intl,5,40.7,-74.0,600x400",
		} {
			_, err := dto.ParseSnapshotPath(raw)
			require.Error(t, err, "raw=%q", raw)
			appErr, ok := errors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrInvalidRequest.Code, appErr.Code)
		}
	})
}

func TestSnapshotRequest_HasOverlay(t *testing.T) {
	assert.False(t, (&dto.SnapshotRequest{}).HasOverlay())
	assert.True(t, (&dto.SnapshotRequest{Domain: "maps.example.org"}).HasOverlay())
	assert.True(t, (&dto.SnapshotRequest{Title: "Route 66"}).HasOverlay())
}
