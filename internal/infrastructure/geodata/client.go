package geodata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/paulmach/orb/geojson"
	"github.com/snapshot-microservice/internal/config"
	"github.com/snapshot-microservice/internal/domain/repository"
	"github.com/snapshot-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	loaderPath string
	logger     *zap.Logger
}

// NewGeoDataClient создает загрузчик геоданных оверлея с внешних доменов
func NewGeoDataClient(cfg *config.OverlayConfig, logger *zap.Logger) repository.GeoDataLoader {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		loaderPath: cfg.LoaderPath,
		logger:     logger,
	}
}

// Load запрашивает GeoJSON-коллекцию по (protocol, domain, title, groups).
// Домен обязан быть предварительно разрешен allow-списком
func (c *client) Load(ctx context.Context, protocol, domain, title, groups string) (*geojson.FeatureCollection, error) {
	query := url.Values{}
	query.Set("title", title)
	if groups != "" {
		query.Set("groups", groups)
	}

	reqURL := fmt.Sprintf("%s://%s%s?%s", protocol, domain, c.loaderPath, query.Encode())

	c.logger.Debug("Loading overlay geo data",
		zap.String("domain", domain),
		zap.String("title", title),
		zap.String("groups", groups))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Geo data request failed", zap.Error(err))
		return nil, errors.ErrDataLoadFailed.WithDetails(map[string]interface{}{
			"domain": domain,
			"title":  title,
		})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("Geo data backend returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, errors.ErrDataLoadFailed.WithDetails(map[string]interface{}{
			"domain": domain,
			"title":  title,
			"status": resp.StatusCode,
		})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read geo data response: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		c.logger.Error("Failed to parse geo data", zap.Error(err))
		return nil, errors.ErrDataLoadFailed.WithDetails(map[string]interface{}{
			"domain": domain,
			"title":  title,
			"reason": "invalid geojson",
		})
	}

	return fc, nil
}
