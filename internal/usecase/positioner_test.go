package usecase_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapshot-microservice/internal/usecase"
)

func featureCollection(geoms ...orb.Geometry) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, g := range geoms {
		fc.Append(geojson.NewFeature(g))
	}
	return fc
}

func TestAutoPosition_Fallback(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		center, zoom := usecase.AutoPosition(600, 400, true, 0, geojson.NewFeatureCollection())
		assert.Equal(t, 0.0, center.Lat)
		assert.Equal(t, 0.0, center.Lon)
		assert.Equal(t, 1, zoom)
	})

	t.Run("nil collection", func(t *testing.T) {
		center, zoom := usecase.AutoPosition(600, 400, true, 0, nil)
		assert.Equal(t, 0.0, center.Lat)
		assert.Equal(t, 0.0, center.Lon)
		assert.Equal(t, 1, zoom)
	})

	t.Run("only out-of-range geometries", func(t *testing.T) {
		fc := featureCollection(orb.Point{300, 95})
		center, zoom := usecase.AutoPosition(600, 400, true, 0, fc)
		assert.Equal(t, 0.0, center.Lat)
		assert.Equal(t, 1, zoom)
	})
}

func TestAutoPosition_Fit(t *testing.T) {
	t.Run("single point gets max fit zoom capped to 13", func(t *testing.T) {
		fc := featureCollection(orb.Point{-74.0, 40.7})
		center, zoom := usecase.AutoPosition(600, 400, true, 0, fc)
		assert.InDelta(t, 40.7, center.Lat, 1e-6)
		assert.InDelta(t, -74.0, center.Lon, 1e-6)
		assert.Equal(t, 13, zoom)
	})

	t.Run("large extent gives low zoom", func(t *testing.T) {
		fc := featureCollection(orb.LineString{{-120, 30}, {-70, 50}})
		center, zoom := usecase.AutoPosition(600, 400, true, 0, fc)
		require.Less(t, zoom, 13)
		assert.InDelta(t, -95.0, center.Lon, 1e-6)
		// Центр по широте лежит между крайними точками
		assert.Greater(t, center.Lat, 30.0)
		assert.Less(t, center.Lat, 50.0)
	})

	t.Run("out-of-range member is excluded from bounds", func(t *testing.T) {
		clean := featureCollection(orb.LineString{{10, 10}, {12, 12}})
		dirty := featureCollection(
			orb.LineString{{10, 10}, {12, 12}},
			orb.Point{250, 10},
		)
		cleanCenter, cleanZoom := usecase.AutoPosition(600, 400, true, 0, clean)
		dirtyCenter, dirtyZoom := usecase.AutoPosition(600, 400, true, 0, dirty)
		assert.Equal(t, cleanZoom, dirtyZoom)
		assert.InDelta(t, cleanCenter.Lat, dirtyCenter.Lat, 1e-9)
		assert.InDelta(t, cleanCenter.Lon, dirtyCenter.Lon, 1e-9)
	})

	t.Run("mask polygon contributes hole bounds", func(t *testing.T) {
		// Внешнее кольцо выходит за мировой экстент, дырка - зона интереса
		mask := orb.Polygon{
			{{-190, -95}, {190, -95}, {190, 95}, {-190, 95}, {-190, -95}},
			{{20, 40}, {22, 40}, {22, 42}, {20, 42}, {20, 40}},
		}
		center, zoom := usecase.AutoPosition(600, 400, true, 0, featureCollection(mask))
		assert.InDelta(t, 21.0, center.Lon, 1e-6)
		assert.InDelta(t, 41.0, center.Lat, 0.5)
		assert.Greater(t, zoom, 1)
	})

	t.Run("mask polygon without hole is ignored", func(t *testing.T) {
		mask := orb.Polygon{
			{{-190, -95}, {190, -95}, {190, 95}, {-190, 95}, {-190, -95}},
		}
		center, zoom := usecase.AutoPosition(600, 400, true, 0, featureCollection(mask))
		assert.Equal(t, 0.0, center.Lat)
		assert.Equal(t, 1, zoom)
	})

	t.Run("nested collections are traversed", func(t *testing.T) {
		nested := orb.Collection{
			orb.Collection{orb.Point{5, 5}},
			orb.MultiPolygon{
				{{{6, 5}, {7, 5}, {7, 6}, {6, 6}, {6, 5}}},
			},
		}
		_, zoom := usecase.AutoPosition(600, 400, true, 0, featureCollection(nested))
		assert.Greater(t, zoom, 1)
		assert.LessOrEqual(t, zoom, 13)
	})
}

func TestAutoPosition_ConcreteZoom(t *testing.T) {
	// Конкретный зум не замещается: подгонка дает только центр
	fc := featureCollection(orb.Point{-74.0, 40.7})
	center, zoom := usecase.AutoPosition(600, 400, false, 17, fc)
	assert.Equal(t, 17, zoom)
	assert.InDelta(t, 40.7, center.Lat, 1e-6)
	assert.InDelta(t, -74.0, center.Lon, 1e-6)
}
