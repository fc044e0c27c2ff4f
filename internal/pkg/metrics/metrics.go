package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "snapshot",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "snapshot",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "path"})

	// Render pipeline metrics
	renderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "snapshot",
		Subsystem: "render",
		Name:      "duration_seconds",
		Help:      "End-to-end snapshot render latency in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"source", "zoom", "format", "scale"})

	renderErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "snapshot",
		Subsystem: "render",
		Name:      "errors_total",
		Help:      "Total failed snapshot requests by error code",
	}, []string{"code"})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "snapshot",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"result"})
)

// ObserveRender пишет одну timing-метрику на запрос снапшота.
// Точка в значении scale заменяется на подчеркивание, чтобы не
// конфликтовать с разделителем полей метрик
func ObserveRender(source string, zoom int, format string, scale float64, elapsed time.Duration) {
	scaleLabel := strings.ReplaceAll(strconv.FormatFloat(scale, 'g', -1, 64), ".", "_")
	renderDuration.WithLabelValues(source, strconv.Itoa(zoom), format, scaleLabel).
		Observe(elapsed.Seconds())
}

// CountRenderError инкрементирует счетчик ошибок по коду
func CountRenderError(code string) {
	renderErrors.WithLabelValues(code).Inc()
}

// Middleware собирает HTTP-метрики по каждому запросу
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		method := c.Method()
		status := strconv.Itoa(c.Response().StatusCode())

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler отдает /metrics в формате Prometheus поверх fasthttp
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
