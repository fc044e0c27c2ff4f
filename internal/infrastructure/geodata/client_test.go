package geodata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/snapshot-microservice/internal/config"
	"github.com/snapshot-microservice/internal/infrastructure/geodata"
	"github.com/snapshot-microservice/internal/pkg/errors"
)

const featureCollectionJSON = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [-74.0, 40.7]},
			"properties": {"title": "Route 66"}
		}
	]
}`

func TestGeoDataClient_Load(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/w/api.php", r.URL.Path)
			assert.Equal(t, "Route 66", r.URL.Query().Get("title"))
			assert.Equal(t, "group1,group2", r.URL.Query().Get("groups"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(featureCollectionJSON))
		}))
		defer server.Close()

		loader := geodata.NewGeoDataClient(&config.OverlayConfig{
			LoaderPath:     "/w/api.php",
			RequestTimeout: 5 * time.Second,
		}, logger)

		domain := strings.TrimPrefix(server.URL, "http://")
		fc, err := loader.Load(context.Background(), "http", domain, "Route 66", "group1,group2")
		require.NoError(t, err)
		require.Len(t, fc.Features, 1)
		assert.InDelta(t, 40.7, fc.Features[0].Geometry.Bound().Min.Lat(), 1e-9)
	})

	t.Run("groups omitted when empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, present := r.URL.Query()["groups"]
			assert.False(t, present)
			w.Write([]byte(featureCollectionJSON))
		}))
		defer server.Close()

		loader := geodata.NewGeoDataClient(&config.OverlayConfig{
			LoaderPath:     "/w/api.php",
			RequestTimeout: 5 * time.Second,
		}, logger)

		domain := strings.TrimPrefix(server.URL, "http://")
		_, err := loader.Load(context.Background(), "http", domain, "Route 66", "")
		require.NoError(t, err)
	})

	t.Run("backend error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "not found", http.StatusNotFound)
		}))
		defer server.Close()

		loader := geodata.NewGeoDataClient(&config.OverlayConfig{
			LoaderPath:     "/w/api.php",
			RequestTimeout: 5 * time.Second,
		}, logger)

		domain := strings.TrimPrefix(server.URL, "http://")
		_, err := loader.Load(context.Background(), "http", domain, "Route 66", "")
		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrDataLoadFailed.Code, appErr.Code)
	})

	t.Run("invalid geojson", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"broken":`))
		}))
		defer server.Close()

		loader := geodata.NewGeoDataClient(&config.OverlayConfig{
			LoaderPath:     "/w/api.php",
			RequestTimeout: 5 * time.Second,
		}, logger)

		domain := strings.TrimPrefix(server.URL, "http://")
		_, err := loader.Load(context.Background(), "http", domain, "Route 66", "")
		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrDataLoadFailed.Code, appErr.Code)
	})

	t.Run("unreachable backend", func(t *testing.T) {
		loader := geodata.NewGeoDataClient(&config.OverlayConfig{
			LoaderPath:     "/w/api.php",
			RequestTimeout: 200 * time.Millisecond,
		}, logger)

		_, err := loader.Load(context.Background(), "http", "127.0.0.1:1", "Route 66", "")
		require.Error(t, err)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrDataLoadFailed.Code, appErr.Code)
	})
}
