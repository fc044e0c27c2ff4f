package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/snapshot-microservice/internal/domain"
	"github.com/snapshot-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type statsRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewStatsRepository создает репозиторий учета рендеров
func NewStatsRepository(db *DB, logger *zap.Logger) repository.StatsRepository {
	return &statsRepository{
		db:     db,
		logger: logger,
	}
}

// RecordRender пишет одну запись учета выполненного рендера
func (r *statsRepository) RecordRender(ctx context.Context, rec domain.RenderRecord) error {
	const query = `
		INSERT INTO render_log (source_id, zoom, format, overlay, duration_ms, rendered_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		rec.SourceID, rec.Zoom, rec.Format, rec.Overlay, rec.DurationMS, rec.RenderedAt)
	if err != nil {
		r.logger.Error("failed to record render", zap.Error(err))
		return fmt.Errorf("record render: %w", err)
	}
	return nil
}

// GetStatistics возвращает агрегированную статистику по источникам
func (r *statsRepository) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	const query = `
		SELECT source_id,
		       COUNT(*)                                   AS total_renders,
		       COUNT(*) FILTER (WHERE overlay)            AS overlay_renders,
		       COALESCE(AVG(duration_ms), 0)              AS avg_duration_ms
		FROM render_log
		GROUP BY source_id
		ORDER BY total_renders DESC`

	var sources []domain.SourceStats
	if err := r.db.SelectContext(ctx, &sources, query); err != nil {
		r.logger.Error("failed to get render statistics", zap.Error(err))
		return nil, fmt.Errorf("get render statistics: %w", err)
	}

	return &domain.Statistics{
		Sources:     sources,
		LastUpdated: time.Now(),
	}, nil
}
