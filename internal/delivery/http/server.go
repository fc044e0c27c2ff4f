package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/snapshot-microservice/internal/config"
	"github.com/snapshot-microservice/internal/delivery/http/handler"
	"github.com/snapshot-microservice/internal/delivery/http/middleware"
	"github.com/snapshot-microservice/internal/pkg/errors"
	"github.com/snapshot-microservice/internal/pkg/metrics"
	"github.com/snapshot-microservice/internal/pkg/utils"
)

// HealthChecker - проверка живости внешнего соединения
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	snapshotHandler *handler.SnapshotHandler
	statsHandler    *handler.StatsHandler

	// Health-проверки соединений
	dbHealth    HealthChecker
	cacheHealth HealthChecker
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	snapshotHandler *handler.SnapshotHandler,
	statsHandler *handler.StatsHandler,
	dbHealth HealthChecker,
	cacheHealth HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Snapshot Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		snapshotHandler: snapshotHandler,
		statsHandler:    statsHandler,
		dbHealth:        dbHealth,
		cacheHealth:     cacheHealth,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.WithRequestID())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(metrics.Middleware())
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Prometheus metrics
	s.app.Get("/metrics", metrics.Handler())

	// Снапшоты: sourceId,zoom,lat,lon,WxH[@Sx].format
	s.app.Get("/img/:snap", s.snapshotHandler.GetSnapshot)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", s.healthHandler)

	// Stats
	api.Get("/stats", s.statsHandler.GetStatistics)
}

func (s *Server) healthHandler(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	status := fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
	}
	code := fiber.StatusOK

	if s.dbHealth != nil {
		if err := s.dbHealth.Health(ctx); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			code = fiber.StatusServiceUnavailable
		}
	}
	if s.cacheHealth != nil {
		if err := s.cacheHealth.Health(ctx); err != nil {
			status["status"] = "degraded"
			status["cache"] = err.Error()
			code = fiber.StatusServiceUnavailable
		}
	}

	return c.Status(code).JSON(status)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок уровня fiber
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if fiberErr, ok := err.(*fiber.Error); ok {
			return c.Status(fiberErr.Code).JSON(utils.ErrorResponse{
				Error: errors.New("HTTP_ERROR", fiberErr.Message, fiberErr.Code),
			})
		}

		logger.Error("Unhandled error", zap.Error(err))
		return utils.SendError(c, err)
	}
}
