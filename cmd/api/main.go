package main

// @title Snapshot Microservice API
// @version 1.0.0
// @description Сервис статических растровых снапшотов карт. Рендерит одно изображение региона по настроенному источнику тайлов, опционально композитит поверх него оверлейный слой из внешних геоданных (GeoJSON) с авто-позиционированием кадра.

// @contact.name API Support
// @contact.email support@snapshot-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/snapshot-microservice/docs"
	"github.com/snapshot-microservice/internal/config"
	httpDelivery "github.com/snapshot-microservice/internal/delivery/http"
	"github.com/snapshot-microservice/internal/delivery/http/handler"
	"github.com/snapshot-microservice/internal/infrastructure/geodata"
	"github.com/snapshot-microservice/internal/infrastructure/imaging"
	"github.com/snapshot-microservice/internal/infrastructure/render"
	"github.com/snapshot-microservice/internal/pkg/allowlist"
	"github.com/snapshot-microservice/internal/pkg/logger"
	"github.com/snapshot-microservice/internal/repository/cache"
	"github.com/snapshot-microservice/internal/repository/postgres"
	"github.com/snapshot-microservice/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Snapshot Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Bool("overlays_enabled", cfg.OverlaysEnabled()),
	)

	// 3. Load source catalog (неизменяем после старта)
	registry, err := config.LoadSources(cfg.Sources.CatalogPath)
	if err != nil {
		log.Fatal("Failed to load sources catalog", zap.Error(err))
	}
	log.Info("Sources catalog loaded", zap.Int("sources", registry.Len()))

	// 4. Connect to PostgreSQL (учет рендеров)
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 5. Connect to Redis (кэш снапшотов)
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 6. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 7. Initialize repositories and collaborators
	snapshotCache := cache.NewSnapshotRepository(redisClient)
	statsRepo := postgres.NewStatsRepository(db, log)
	geoLoader := geodata.NewGeoDataClient(&cfg.Overlay, log)
	renderClient := render.NewRenderClient(&cfg.Render, log)
	codec := imaging.NewCodec()
	resolver := allowlist.NewResolver(cfg.Overlay.HTTPSDomains, cfg.Overlay.HTTPDomains)

	log.Info("Repositories initialized")

	// 8. Initialize use cases
	snapshotUC := usecase.NewSnapshotUseCase(
		registry,
		resolver,
		geoLoader,
		renderClient,
		renderClient,
		codec,
		snapshotCache,
		statsRepo,
		log,
		cfg.OverlaysEnabled(),
		cfg.Cache.SnapshotTTL,
	)
	statsUC := usecase.NewStatsUseCase(statsRepo, log)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP handlers and server
	snapshotHandler := handler.NewSnapshotHandler(snapshotUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	server := httpDelivery.NewServer(
		cfg,
		log,
		snapshotHandler,
		statsHandler,
		db,
		redisClient,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
