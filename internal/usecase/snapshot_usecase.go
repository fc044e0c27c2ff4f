package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/snapshot-microservice/internal/domain"
	"github.com/snapshot-microservice/internal/domain/repository"
	"github.com/snapshot-microservice/internal/pkg/allowlist"
	"github.com/snapshot-microservice/internal/pkg/errors"
	"github.com/snapshot-microservice/internal/pkg/metrics"
	"github.com/snapshot-microservice/internal/usecase/dto"
)

// SnapshotUseCase - оркестратор пайплайна рендера снапшотов
type SnapshotUseCase struct {
	registry        *domain.SourceRegistry
	resolver        *allowlist.Resolver
	loader          repository.GeoDataLoader
	tileRenderer    repository.TileRenderer
	overlayRenderer repository.OverlayRenderer
	codec           repository.ImageCodec
	cacheRepo       repository.CacheRepository
	statsRepo       repository.StatsRepository
	logger          *zap.Logger

	overlaysEnabled bool
	cacheTTL        time.Duration
}

// NewSnapshotUseCase создает новый SnapshotUseCase
func NewSnapshotUseCase(
	registry *domain.SourceRegistry,
	resolver *allowlist.Resolver,
	loader repository.GeoDataLoader,
	tileRenderer repository.TileRenderer,
	overlayRenderer repository.OverlayRenderer,
	codec repository.ImageCodec,
	cacheRepo repository.CacheRepository,
	statsRepo repository.StatsRepository,
	logger *zap.Logger,
	overlaysEnabled bool,
	cacheTTL time.Duration,
) *SnapshotUseCase {
	return &SnapshotUseCase{
		registry:        registry,
		resolver:        resolver,
		loader:          loader,
		tileRenderer:    tileRenderer,
		overlayRenderer: overlayRenderer,
		codec:           codec,
		cacheRepo:       cacheRepo,
		statsRepo:       statsRepo,
		logger:          logger,
		overlaysEnabled: overlaysEnabled,
		cacheTTL:        cacheTTL,
	}
}

// GetSnapshot выполняет полный пайплайн: валидация, выбор пути,
// рендер (и композитинг на оверлейном пути). Возвращает снапшот и
// финальные параметры рендера для метрик
func (uc *SnapshotUseCase) GetSnapshot(ctx context.Context, req *dto.SnapshotRequest) (*domain.Snapshot, *domain.RenderParams, error) {
	src, ok := uc.registry.Get(req.SourceID)
	if !ok {
		return nil, nil, errors.ErrSourceNotFound.WithDetails(map[string]interface{}{
			"source": req.SourceID,
		})
	}

	params, err := ValidateParams(req, src, uc.overlaysEnabled)
	if err != nil {
		return nil, nil, err
	}

	cacheKey := snapshotCacheKey(req)
	if cached := uc.cachedSnapshot(ctx, cacheKey, params.Format); cached != nil {
		rp := uc.renderParams(params, domain.Center{Lat: params.Lat, Lon: params.Lon}, params.Zoom)
		return cached, &rp, nil
	}

	var snapshot *domain.Snapshot
	var rendered domain.RenderParams

	start := time.Now()
	if params.Overlay {
		snapshot, rendered, err = uc.renderWithOverlay(ctx, params)
	} else {
		snapshot, rendered, err = uc.renderDirect(ctx, params)
	}
	if err != nil {
		return nil, nil, err
	}

	uc.storeSnapshot(ctx, cacheKey, snapshot.Data)
	uc.recordStats(ctx, &rendered, params.Overlay, time.Since(start))

	return snapshot, &rendered, nil
}

// renderDirect - прямой путь: один вызов движка рендера, без композитинга
func (uc *SnapshotUseCase) renderDirect(ctx context.Context, params *ResolvedParams) (*domain.Snapshot, domain.RenderParams, error) {
	rp := uc.renderParams(params, domain.Center{Lat: params.Lat, Lon: params.Lon}, params.Zoom)

	result, err := uc.tileRenderer.Render(ctx, rp)
	if err != nil {
		uc.logger.Error("Base map render failed", zap.Error(err))
		return nil, rp, err
	}

	return &domain.Snapshot{Data: result.Data, Headers: result.Headers}, rp, nil
}

// renderWithOverlay - оверлейный путь: загрузка геоданных,
// авто-позиционирование, fork-join рендер и композитинг
func (uc *SnapshotUseCase) renderWithOverlay(ctx context.Context, params *ResolvedParams) (*domain.Snapshot, domain.RenderParams, error) {
	var rp domain.RenderParams

	protocol, err := uc.resolver.Protocol(params.Domain)
	if err != nil {
		return nil, rp, err
	}

	data, err := uc.loader.Load(ctx, protocol, params.Domain, params.Title, params.Groups)
	if err != nil {
		return nil, rp, err
	}

	center := domain.Center{Lat: params.Lat, Lon: params.Lon}
	zoom := params.Zoom
	if params.NeedsPositioning() {
		center, zoom = AutoPosition(params.Width, params.Height, params.ZoomAuto, params.Zoom, data)
		uc.logger.Debug("Auto-positioned overlay frame",
			zap.Float64("lat", center.Lat),
			zap.Float64("lon", center.Lon),
			zap.Int("zoom", zoom))
	}

	if !params.Source.ZoomInRange(zoom) {
		return nil, rp, errors.ErrInvalidZoom.WithDetails(map[string]interface{}{
			"zoom":    zoom,
			"minzoom": params.Source.MinZoom,
			"maxzoom": params.Source.MaxZoom,
		})
	}

	rp = uc.renderParams(params, center, zoom)

	// Fork-join: базовая карта и оверлей рендерятся параллельно в
	// одинаковых параметрах кадра. Первая ошибка любой ветки отменяет
	// контекст группы и роняет весь запрос - частичный результат
	// наружу не уходит
	var baseResult, overlayResult *domain.RenderResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		baseResult, err = uc.tileRenderer.Render(gctx, rp)
		return err
	})
	g.Go(func() error {
		var err error
		overlayResult, err = uc.overlayRenderer.RenderOverlay(gctx, rp, data)
		return err
	})
	if err := g.Wait(); err != nil {
		uc.logger.Error("Overlay fork-join render failed", zap.Error(err))
		return nil, rp, err
	}

	baseImg, err := uc.codec.Decode(baseResult.Data)
	if err != nil {
		return nil, rp, err
	}
	overlayImg, err := uc.codec.Decode(overlayResult.Data)
	if err != nil {
		return nil, rp, err
	}

	// Premultiplication обязательна до любой композитной арифметики
	uc.codec.Premultiply(baseImg)
	uc.codec.Premultiply(overlayImg)

	composite, err := uc.codec.Composite(baseImg, overlayImg)
	if err != nil {
		return nil, rp, err
	}

	encoded, err := uc.codec.Encode(composite, domain.OverlayEncodeProfile)
	if err != nil {
		return nil, rp, err
	}

	// Заголовки берутся только из рендера базовой карты; заголовки
	// оверлея отбрасываются. Композит кодируется всегда в PNG
	headers := make(map[string]string, len(baseResult.Headers))
	for k, v := range baseResult.Headers {
		headers[k] = v
	}
	headers["Content-Type"] = "image/png"

	return &domain.Snapshot{Data: encoded, Headers: headers}, rp, nil
}

func (uc *SnapshotUseCase) renderParams(params *ResolvedParams, center domain.Center, zoom int) domain.RenderParams {
	return domain.RenderParams{
		Zoom:   zoom,
		Scale:  params.Scale,
		Center: center,
		Width:  params.Width,
		Height: params.Height,
		Format: params.Format,
		Source: params.Source,
	}
}

func snapshotCacheKey(req *dto.SnapshotRequest) string {
	return fmt.Sprintf("snapshot:%s,%s,%s,%s,%sx%s.%s|%s|%s|%s",
		req.SourceID, req.Zoom, req.Lat, req.Lon,
		req.Width, req.Height, req.Format,
		req.Domain, req.Title, req.Groups)
}

// cachedSnapshot - best-effort чтение кэша; промах и ошибка равнозначны
func (uc *SnapshotUseCase) cachedSnapshot(ctx context.Context, key, format string) *domain.Snapshot {
	if uc.cacheRepo == nil {
		return nil
	}
	data, err := uc.cacheRepo.Get(ctx, key)
	if err != nil || len(data) == 0 {
		metrics.CacheHits.WithLabelValues("miss").Inc()
		return nil
	}
	metrics.CacheHits.WithLabelValues("hit").Inc()

	contentType := "image/png"
	if format == "jpeg" {
		contentType = "image/jpeg"
	}
	return &domain.Snapshot{
		Data:    data,
		Headers: map[string]string{"Content-Type": contentType},
	}
}

func (uc *SnapshotUseCase) storeSnapshot(ctx context.Context, key string, data []byte) {
	if uc.cacheRepo == nil {
		return
	}
	if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache snapshot", zap.Error(err))
	}
}

func (uc *SnapshotUseCase) recordStats(ctx context.Context, rp *domain.RenderParams, overlay bool, elapsed time.Duration) {
	if uc.statsRepo == nil {
		return
	}
	rec := domain.RenderRecord{
		SourceID:   rp.Source.ID,
		Zoom:       rp.Zoom,
		Format:     rp.Format,
		Overlay:    overlay,
		DurationMS: float64(elapsed.Microseconds()) / 1000,
		RenderedAt: time.Now(),
	}
	if err := uc.statsRepo.RecordRender(ctx, rec); err != nil {
		uc.logger.Warn("Failed to record render stats", zap.Error(err))
	}
}
