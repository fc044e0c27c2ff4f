package usecase

import (
	"context"

	"github.com/snapshot-microservice/internal/domain"
	"github.com/snapshot-microservice/internal/domain/repository"
	"github.com/snapshot-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

// StatsUseCase - use case статистики рендеров
type StatsUseCase struct {
	statsRepo repository.StatsRepository
	logger    *zap.Logger
}

// NewStatsUseCase - создание нового StatsUseCase
func NewStatsUseCase(statsRepo repository.StatsRepository, logger *zap.Logger) *StatsUseCase {
	return &StatsUseCase{
		statsRepo: statsRepo,
		logger:    logger,
	}
}

// GetStatistics возвращает агрегированную статистику рендеров
func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	stats, err := uc.statsRepo.GetStatistics(ctx)
	if err != nil {
		uc.logger.Error("Failed to load render statistics", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return stats, nil
}
