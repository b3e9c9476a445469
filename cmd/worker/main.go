package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/opendata-browser/internal/config"
	"github.com/opendata-browser/internal/infrastructure/opendata"
	"github.com/opendata-browser/internal/pkg/logger"
	"github.com/opendata-browser/internal/repository/cache"
	"github.com/opendata-browser/internal/usecase"
	"github.com/opendata-browser/internal/worker"
	"github.com/opendata-browser/internal/worker/warmup"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Warmup.Enabled {
		fmt.Println("Warmup worker is disabled in configuration. Set WARMUP_ENABLED=true to enable.")
		os.Exit(0)
	}

	// Отдельный процесс полезен только с общим кешем
	if cfg.Geocode.CacheBackend != config.CacheBackendRedis {
		fmt.Println("Warmup worker requires GEOCODE_CACHE_BACKEND=redis.")
		os.Exit(1)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Neighbourhood Warmup Worker")
	log.Info("Configuration loaded",
		zap.Duration("interval", cfg.Warmup.Interval),
		zap.Int("max_per_cycle", cfg.Geocode.MaxPerCycle),
		zap.Strings("geometry_columns", cfg.Geocode.GeometryColumns))

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize use cases
	client := opendata.NewClient(&cfg.OpenData, cfg.Geocode.SearchRadiusMeters, log)
	geocodeUC := usecase.NewGeocodeUseCase(client, cache.NewRedisNeighbourhoodCache(redisClient), &cfg.Geocode, log)
	closureUC := usecase.NewClosureUseCase(client, geocodeUC, &cfg.Map, log)

	// 5. Register and start workers
	manager := worker.NewManager(log)
	manager.Register(warmup.NewNeighbourhoodWarmer(closureUC, cfg.Warmup.Interval, log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	log.Info("Warmup worker started successfully")

	// 6. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down worker gracefully...")
	cancel()

	if err := manager.Stop(); err != nil {
		log.Error("Worker shutdown error", zap.Error(err))
	}

	log.Info("Worker stopped successfully")
}
