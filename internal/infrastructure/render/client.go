package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/paulmach/orb/geojson"
	"github.com/snapshot-microservice/internal/config"
	"github.com/snapshot-microservice/internal/domain"
	"github.com/snapshot-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

// Заголовки рендера, пробрасываемые клиенту
var propagatedHeaders = []string{
	"Content-Type",
	"Cache-Control",
	"ETag",
	"Expires",
	"Last-Modified",
}

// Client - HTTP-клиент движка рендера. Реализует и базовый, и
// оверлейный рендер: оверлей уходит на отдельный бэкенд с геоданными
// в теле запроса как синтетический источник
type Client struct {
	httpClient *http.Client
	baseURL    string
	overlayURL string
	logger     *zap.Logger
}

// NewRenderClient создает клиент движка рендера
func NewRenderClient(cfg *config.RenderConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:    cfg.BackendURL,
		overlayURL: cfg.OverlayBackendURL,
		logger:     logger,
	}
}

// Render рендерит базовую карту против тайлового источника
func (c *Client) Render(ctx context.Context, params domain.RenderParams) (*domain.RenderResult, error) {
	reqURL := fmt.Sprintf("%s/render?%s", c.baseURL, renderQuery(params).Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create render request: %w", err)
	}

	return c.execute(req, "base")
}

// RenderOverlay рендерит оверлейный слой из геоданных в тех же
// параметрах кадра, что и базовая карта
func (c *Client) RenderOverlay(ctx context.Context, params domain.RenderParams, data *geojson.FeatureCollection) (*domain.RenderResult, error) {
	payload, err := data.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize overlay data: %w", err)
	}

	reqURL := fmt.Sprintf("%s/render?%s", c.overlayURL, renderQuery(params).Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/geo+json")

	return c.execute(req, "overlay")
}

func renderQuery(params domain.RenderParams) url.Values {
	query := url.Values{}
	query.Set("source", params.Source.TileURI)
	query.Set("zoom", strconv.Itoa(params.Zoom))
	query.Set("scale", strconv.FormatFloat(params.Scale, 'g', -1, 64))
	query.Set("lat", strconv.FormatFloat(params.Center.Lat, 'f', 7, 64))
	query.Set("lon", strconv.FormatFloat(params.Center.Lon, 'f', 7, 64))
	query.Set("width", strconv.Itoa(params.Width))
	query.Set("height", strconv.Itoa(params.Height))
	query.Set("format", params.Format)
	return query
}

func (c *Client) execute(req *http.Request, kind string) (*domain.RenderResult, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Render backend request failed",
			zap.String("kind", kind),
			zap.Error(err))
		return nil, errors.ErrRenderFailed.WithDetails(map[string]interface{}{
			"kind": kind,
		})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("Render backend returned error",
			zap.String("kind", kind),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, errors.ErrRenderFailed.WithDetails(map[string]interface{}{
			"kind":   kind,
			"status": resp.StatusCode,
		})
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read render response: %w", err)
	}

	headers := make(map[string]string, len(propagatedHeaders))
	for _, h := range propagatedHeaders {
		if v := resp.Header.Get(h); v != "" {
			headers[h] = v
		}
	}

	return &domain.RenderResult{Data: data, Headers: headers}, nil
}
