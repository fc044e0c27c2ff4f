package errors

import "net/http"

// Ошибки валидации параметров снапшота
var (
	ErrStaticDisabled = New(
		"STATIC_DISABLED",
		"Static snapshot rendering is not enabled for this source",
		http.StatusBadRequest,
	)

	ErrFormatNotAllowed = New(
		"FORMAT_NOT_ALLOWED",
		"Requested image format is not allowed for this source",
		http.StatusBadRequest,
	)

	ErrSizeNotInteger = New(
		"SIZE_NOT_INTEGER",
		"Width and height must be integers",
		http.StatusBadRequest,
	)

	ErrSizeTooLarge = New(
		"SIZE_TOO_LARGE",
		"Requested image size exceeds source limits",
		http.StatusBadRequest,
	)

	ErrCoordsNotNumeric = New(
		"COORDS_NOT_NUMERIC",
		"Latitude and longitude must be numeric",
		http.StatusBadRequest,
	)

	ErrInvalidZoom = New(
		"INVALID_ZOOM",
		"Zoom level is outside the allowed range for this source",
		http.StatusBadRequest,
	)
)

// Ошибки оверлейного пути
var (
	ErrOverlaysDisabled = New(
		"OVERLAYS_DISABLED",
		"Overlay rendering is not configured",
		http.StatusBadRequest,
	)

	ErrMissingDomainOrTitle = New(
		"MISSING_DOMAIN_OR_TITLE",
		"Both domain and title are required for overlay rendering",
		http.StatusBadRequest,
	)

	ErrOverlayFormatNotPng = New(
		"OVERLAY_FORMAT_NOT_PNG",
		"Overlay snapshots are only available in png format",
		http.StatusBadRequest,
	)

	ErrTitleContainsDelimiter = New(
		"TITLE_CONTAINS_DELIMITER",
		"Title must not contain the '|' character",
		http.StatusBadRequest,
	)

	ErrDomainNotAllowed = New(
		"DOMAIN_NOT_ALLOWED",
		"Data domain is not in the allow-list",
		http.StatusBadRequest,
	)
)

// Инфраструктурные ошибки
var (
	ErrSourceNotFound = New(
		"SOURCE_NOT_FOUND",
		"Unknown map source",
		http.StatusNotFound,
	)

	ErrDataLoadFailed = New(
		"DATA_LOAD_FAILED",
		"Failed to load overlay geo data",
		http.StatusBadGateway,
	)

	ErrRenderFailed = New(
		"RENDER_FAILED",
		"Map rendering failed",
		http.StatusBadGateway,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
