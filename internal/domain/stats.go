package domain

import "time"

// RenderRecord - одна запись учета рендера
type RenderRecord struct {
	SourceID   string
	Zoom       int
	Format     string
	Overlay    bool
	DurationMS float64
	RenderedAt time.Time
}

// SourceStats - агрегированная статистика по одному источнику
type SourceStats struct {
	SourceID      string  `json:"source_id" db:"source_id"`
	TotalRenders  int64   `json:"total_renders" db:"total_renders"`
	OverlayCount  int64   `json:"overlay_renders" db:"overlay_renders"`
	AvgDurationMS float64 `json:"avg_duration_ms" db:"avg_duration_ms"`
}

// Statistics - сводная статистика сервиса
type Statistics struct {
	Sources     []SourceStats `json:"sources"`
	LastUpdated time.Time     `json:"last_updated"`
}
