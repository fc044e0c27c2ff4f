package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/snapshot-microservice/internal/pkg/errors"
	"github.com/snapshot-microservice/internal/pkg/metrics"
	"github.com/snapshot-microservice/internal/pkg/utils"
	"github.com/snapshot-microservice/internal/usecase"
	"github.com/snapshot-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// SnapshotHandler - обработчик запросов статических снапшотов карты
type SnapshotHandler struct {
	snapshotUC *usecase.SnapshotUseCase
	logger     *zap.Logger
}

// NewSnapshotHandler - создание нового SnapshotHandler
func NewSnapshotHandler(snapshotUC *usecase.SnapshotUseCase, logger *zap.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotUC: snapshotUC,
		logger:     logger,
	}
}

// GetSnapshot godoc
// @Summary Статический снапшот региона карты
// @Description Рендерит одно растровое изображение региона карты. Сегмент пути: sourceId,zoom|auto,lat|auto,lon|auto,WxH[@Sx].формат. Query-параметры domain+title включают оверлейный слой из геоданных.
// @Tags Snapshot
// @Produce png
// @Param snap path string true "sourceId,zoom,lat,lon,WxH.format"
// @Param domain query string false "Домен источника геоданных оверлея"
// @Param title query string false "Идентификатор набора геоданных"
// @Param groups query string false "Фильтр групп геоданных"
// @Success 200 {file} binary
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /img/{snap} [get]
func (h *SnapshotHandler) GetSnapshot(c *fiber.Ctx) error {
	req, err := dto.ParseSnapshotPath(c.Params("snap"))
	if err != nil {
		return utils.SendError(c, err)
	}
	req.Domain = c.Query("domain")
	req.Title = c.Query("title")
	req.Groups = c.Query("groups")

	start := time.Now()

	snapshot, rendered, err := h.snapshotUC.GetSnapshot(c.Context(), req)
	if err != nil {
		code := "INTERNAL"
		if appErr, ok := errors.AsAppError(err); ok {
			code = appErr.Code
		}
		metrics.CountRenderError(code)
		h.logger.Error("Snapshot request failed",
			zap.String("source", req.SourceID),
			zap.String("code", code),
			zap.Error(err))
		return utils.SendError(c, err)
	}

	// Одна timing-метрика на запрос: source/zoom/format/scale
	metrics.ObserveRender(rendered.Source.ID, rendered.Zoom, rendered.Format, rendered.Scale, time.Since(start))

	for k, v := range snapshot.Headers {
		c.Set(k, v)
	}
	if snapshot.Headers["Content-Type"] == "" {
		if rendered.Format == "jpeg" {
			c.Set("Content-Type", "image/jpeg")
		} else {
			c.Set("Content-Type", "image/png")
		}
	}

	return c.Send(snapshot.Data)
}
