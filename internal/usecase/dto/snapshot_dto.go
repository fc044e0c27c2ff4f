package dto

import (
	"regexp"

	"github.com/snapshot-microservice/internal/pkg/errors"
)

// SnapshotRequest - сырые параметры запроса снапшота до валидации.
// Числовые поля остаются строками: их разбор и классификация ошибок -
// обязанность валидатора параметров
type SnapshotRequest struct {
	SourceID string
	Zoom     string
	Lat      string
	Lon      string
	Width    string
	Height   string
	Scale    string
	Format   string

	// Query-параметры оверлейного пути
	Domain string
	Title  string
	Groups string
}

// HasOverlay - запрошен ли оверлейный путь (любой из domain/title задан)
func (r *SnapshotRequest) HasOverlay() bool {
	return r.Domain != "" || r.Title != ""
}

// Сегмент пути вида sourceId,zoom,lat,lon,WxH[@Sx].format.
// Группы намеренно нестрогие: численность полей проверяет валидатор,
// чтобы вернуть точный код ошибки
var pathPattern = regexp.MustCompile(
	`^([\w-]+),([^,]+),([^,]+),([^,]+),([^x,@.]+)x([^,@.]+?)(?:@([^x]+)x)?\.(\w+)$`,
)

// ParseSnapshotPath разбирает сегмент пути /img/... в SnapshotRequest
func ParseSnapshotPath(raw string) (*SnapshotRequest, error) {
	m := pathPattern.FindStringSubmatch(raw)
	if m == nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"path": raw,
		})
	}

	return &SnapshotRequest{
		SourceID: m[1],
		Zoom:     m[2],
		Lat:      m[3],
		Lon:      m[4],
		Width:    m[5],
		Height:   m[6],
		Scale:    m[7],
		Format:   m[8],
	}, nil
}
