package repository

import (
	"context"

	"github.com/paulmach/orb/geojson"
	"github.com/snapshot-microservice/internal/domain"
)

// TileRenderer - движок рендера базовой карты
type TileRenderer interface {
	Render(ctx context.Context, params domain.RenderParams) (*domain.RenderResult, error)
}

// OverlayRenderer - движок рендера оверлейного слоя. Принимает
// геоданные, сериализуемые в синтетический источник, и рендерит их
// в тех же параметрах кадра, что и базовая карта
type OverlayRenderer interface {
	RenderOverlay(ctx context.Context, params domain.RenderParams, data *geojson.FeatureCollection) (*domain.RenderResult, error)
}
