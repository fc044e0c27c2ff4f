package usecase

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/snapshot-microservice/internal/domain"
	"github.com/snapshot-microservice/internal/pkg/utils"
)

// Потолок зума при zoom=auto. Пересчет центра после усечения зума
// не выполняется: кадр сохраняет центр подгонки
const autoZoomCap = 13

// Максимальный зум подгонки (вырожденные bounds, точки)
const maxFitZoom = 18

// Зум и центр по умолчанию, когда в данных нет ни одной валидной геометрии
const (
	fallbackZoom = 1
	fallbackLat  = 0.0
	fallbackLon  = 0.0
)

// boundsAggregate накапливает объединение валидных bounds
type boundsAggregate struct {
	bound orb.Bound
	valid bool
}

func (a *boundsAggregate) add(b orb.Bound) {
	if a.valid {
		a.bound = a.bound.Union(b)
	} else {
		a.bound = b
		a.valid = true
	}
}

// validBound - bounds целиком лежат в мировом экстенте
func validBound(b orb.Bound) bool {
	return utils.ValidateCoordinates(b.Min.Lat(), b.Min.Lon()) &&
		utils.ValidateCoordinates(b.Max.Lat(), b.Max.Lon())
}

// collectBounds рекурсивно обходит дерево геометрий и собирает
// валидные вклады в общий bounding box
func collectBounds(g orb.Geometry, agg *boundsAggregate) {
	switch geom := g.(type) {
	case nil:
		return
	case orb.Collection:
		for _, child := range geom {
			collectBounds(child, agg)
		}
	case orb.MultiPolygon:
		for _, poly := range geom {
			collectBounds(poly, agg)
		}
	case orb.Polygon:
		if b := geom.Bound(); validBound(b) {
			agg.add(b)
			return
		}
		// Маскирующий полигон: внешнее кольцо покрывает весь мир
		// (невалидные bounds), а дырка очерчивает область интереса -
		// вкладом считаются bounds дырки
		if len(geom) < 2 {
			return
		}
		for _, ring := range geom[1:] {
			if hb := ring.Bound(); validBound(hb) {
				agg.add(hb)
			}
		}
	default:
		if b := g.Bound(); validBound(b) {
			agg.add(b)
		}
	}
}

// aggregateBounds собирает объединенные bounds всей коллекции фич
func aggregateBounds(fc *geojson.FeatureCollection) (orb.Bound, bool) {
	var agg boundsAggregate
	if fc != nil {
		for _, f := range fc.Features {
			if f == nil {
				continue
			}
			collectBounds(f.Geometry, &agg)
		}
	}
	return agg.bound, agg.valid
}

// fitViewport подбирает центр и зум так, чтобы bounds целиком
// поместились в окно width x height пикселей
func fitViewport(width, height int, b orb.Bound) (domain.Center, int) {
	// Углы bounds в пиксельных координатах мира на нулевом зуме
	x1, y1 := utils.Project(b.Max.Lat(), b.Min.Lon(), 0)
	x2, y2 := utils.Project(b.Min.Lat(), b.Max.Lon(), 0)

	dx := x2 - x1
	dy := y2 - y1

	zoom := maxFitZoom
	if dx > 0 || dy > 0 {
		zx := math.Inf(1)
		zy := math.Inf(1)
		if dx > 0 {
			zx = math.Log2(float64(width) / dx)
		}
		if dy > 0 {
			zy = math.Log2(float64(height) / dy)
		}
		zoom = int(math.Floor(math.Min(zx, zy)))
	}
	if zoom > maxFitZoom {
		zoom = maxFitZoom
	}
	if zoom < 0 {
		zoom = 0
	}

	lat, lon := utils.Unproject((x1+x2)/2, (y1+y2)/2, 0)
	return domain.Center{Lat: lat, Lon: lon}, zoom
}

// AutoPosition вычисляет центр и зум кадра по геоданным оверлея.
// Запрошенный zoom=auto замещается зумом подгонки (с потолком),
// конкретный зум сохраняется - от подгонки берется только центр
func AutoPosition(width, height int, zoomAuto bool, requestedZoom int, fc *geojson.FeatureCollection) (domain.Center, int) {
	center := domain.Center{Lat: fallbackLat, Lon: fallbackLon}
	fitZoom := fallbackZoom

	if b, ok := aggregateBounds(fc); ok {
		center, fitZoom = fitViewport(width, height, b)
	}

	if zoomAuto {
		if fitZoom > autoZoomCap {
			fitZoom = autoZoomCap
		}
		return center, fitZoom
	}
	return center, requestedZoom
}
