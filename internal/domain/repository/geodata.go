package repository

import (
	"context"

	"github.com/paulmach/orb/geojson"
)

// GeoDataLoader загружает геоданные оверлея с внешнего домена
type GeoDataLoader interface {
	Load(ctx context.Context, protocol, domain, title, groups string) (*geojson.FeatureCollection, error)
}
