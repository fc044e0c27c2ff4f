package repository

import (
	"context"

	"github.com/snapshot-microservice/internal/domain"
)

// StatsRepository - учет выполненных рендеров
type StatsRepository interface {
	RecordRender(ctx context.Context, rec domain.RenderRecord) error
	GetStatistics(ctx context.Context) (*domain.Statistics, error)
}
