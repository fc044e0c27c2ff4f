package utils

import "math"

// Размер мирового квадрата Web Mercator в пикселях на нулевом зуме
const TileSize = 256.0

// Максимальный широтный предел проекции Web Mercator
const MaxMercatorLat = 85.05112877980659

// ValidateCoordinates проверяет, что точка лежит в мировом экстенте
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ClampLat ограничивает широту диапазоном [-85, 85] (рабочий диапазон рендера)
func ClampLat(lat float64) float64 {
	return math.Max(-85, math.Min(85, lat))
}

// ClampLon ограничивает долготу диапазоном [-180, 180]
func ClampLon(lon float64) float64 {
	return math.Max(-180, math.Min(180, lon))
}

// WorldSize возвращает размер мира в пикселях на заданном зуме
func WorldSize(zoom float64) float64 {
	return TileSize * math.Exp2(zoom)
}

// Project переводит географические координаты в пиксельные координаты
// мирового квадрата Web Mercator на заданном зуме
func Project(lat, lon, zoom float64) (x, y float64) {
	size := WorldSize(zoom)
	siny := math.Sin(lat * math.Pi / 180)

	// Ограничение siny отсекает уход в бесконечность на полюсах
	siny = math.Max(-0.9999999, math.Min(0.9999999, siny))

	x = (lon + 180) / 360 * size
	y = (0.5 - math.Log((1+siny)/(1-siny))/(4*math.Pi)) * size
	return x, y
}

// Unproject переводит пиксельные координаты мирового квадрата обратно
// в географические координаты
func Unproject(x, y, zoom float64) (lat, lon float64) {
	size := WorldSize(zoom)

	lon = x/size*360 - 180
	n := math.Pi - 2*math.Pi*y/size
	lat = 180 / math.Pi * math.Atan(math.Sinh(n))
	return lat, lon
}
