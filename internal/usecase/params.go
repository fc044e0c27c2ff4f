package usecase

import (
	"math"
	"strconv"
	"strings"

	"github.com/snapshot-microservice/internal/domain"
	"github.com/snapshot-microservice/internal/pkg/errors"
	"github.com/snapshot-microservice/internal/pkg/utils"
	"github.com/snapshot-microservice/internal/usecase/dto"
)

// ResolvedParams - параметры запроса после валидации. Поля с флагом
// auto дозаполняются авто-позиционером на оверлейном пути
type ResolvedParams struct {
	Source *domain.SourceDescriptor

	Zoom     int
	ZoomAuto bool

	Lat      float64
	Lon      float64
	CoordsOK bool // false, если lat/lon заданы как auto

	Width  int
	Height int
	Scale  float64
	Format string

	Overlay bool
	Domain  string
	Title   string
	Groups  string
}

const titleDelimiter = "|"

// ValidateParams нормализует и валидирует параметры запроса,
// выбирая прямой либо оверлейный путь рендера
func ValidateParams(req *dto.SnapshotRequest, src *domain.SourceDescriptor, overlaysEnabled bool) (*ResolvedParams, error) {
	if !src.Static {
		return nil, errors.ErrStaticDisabled
	}

	// Масштаб: парсим запрошенное значение, приводим к {1,2}, затем
	// безусловно фиксируем 1 - композитинг других масштабов не умеет
	scale := 1.0
	if req.Scale != "" {
		if v, err := strconv.ParseFloat(req.Scale, 64); err == nil && v > 0 {
			scale = v
		}
	}
	if scale < 1.5 {
		scale = 1
	} else {
		scale = 2
	}
	scale = 1

	if (req.Format != "png" && req.Format != "jpeg") || !src.FormatAllowed(req.Format) {
		return nil, errors.ErrFormatNotAllowed.WithDetails(map[string]interface{}{
			"format": req.Format,
		})
	}

	width, werr := strconv.Atoi(req.Width)
	height, herr := strconv.Atoi(req.Height)
	if werr != nil || herr != nil || width <= 0 || height <= 0 {
		return nil, errors.ErrSizeNotInteger
	}
	if width > src.MaxWidth || height > src.MaxHeight {
		return nil, errors.ErrSizeTooLarge.WithDetails(map[string]interface{}{
			"maxwidth":  src.MaxWidth,
			"maxheight": src.MaxHeight,
		})
	}

	params := &ResolvedParams{
		Source: src,
		Width:  width,
		Height: height,
		Scale:  scale,
		Format: req.Format,
	}

	if !req.HasOverlay() {
		// Прямой путь: координаты и зум обязаны быть конкретными
		lat, latErr := strconv.ParseFloat(req.Lat, 64)
		lon, lonErr := strconv.ParseFloat(req.Lon, 64)
		if latErr != nil || lonErr != nil ||
			math.IsNaN(lat) || math.IsInf(lat, 0) ||
			math.IsNaN(lon) || math.IsInf(lon, 0) {
			return nil, errors.ErrCoordsNotNumeric
		}

		zoom, err := strconv.Atoi(req.Zoom)
		if err != nil || zoom < 0 || !src.ZoomInRange(zoom) {
			return nil, errors.ErrInvalidZoom.WithDetails(map[string]interface{}{
				"minzoom": src.MinZoom,
				"maxzoom": src.MaxZoom,
			})
		}

		params.Lat = utils.ClampLat(lat)
		params.Lon = utils.ClampLon(lon)
		params.CoordsOK = true
		params.Zoom = zoom
		return params, nil
	}

	// Оверлейный путь
	if !overlaysEnabled {
		return nil, errors.ErrOverlaysDisabled
	}
	if req.Domain == "" || req.Title == "" {
		return nil, errors.ErrMissingDomainOrTitle
	}
	if req.Format != "png" {
		return nil, errors.ErrOverlayFormatNotPng
	}
	// Проверяется до любого сетевого ввода-вывода
	if strings.Contains(req.Title, titleDelimiter) {
		return nil, errors.ErrTitleContainsDelimiter
	}

	params.Overlay = true
	params.Domain = req.Domain
	params.Title = req.Title
	params.Groups = req.Groups

	if req.Zoom == "auto" {
		params.ZoomAuto = true
	} else {
		zoom, err := strconv.Atoi(req.Zoom)
		if err != nil || zoom < 0 {
			return nil, errors.ErrInvalidZoom
		}
		params.Zoom = zoom
	}

	if req.Lat == "auto" || req.Lon == "auto" {
		params.CoordsOK = false
	} else {
		lat, latErr := strconv.ParseFloat(req.Lat, 64)
		lon, lonErr := strconv.ParseFloat(req.Lon, 64)
		if latErr != nil || lonErr != nil ||
			math.IsNaN(lat) || math.IsInf(lat, 0) ||
			math.IsNaN(lon) || math.IsInf(lon, 0) {
			return nil, errors.ErrCoordsNotNumeric
		}
		params.Lat = utils.ClampLat(lat)
		params.Lon = utils.ClampLon(lon)
		params.CoordsOK = true
	}

	return params, nil
}

// NeedsPositioning - требуется ли авто-позиционирование по геоданным
func (p *ResolvedParams) NeedsPositioning() bool {
	return p.ZoomAuto || !p.CoordsOK
}
