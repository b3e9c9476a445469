package main

// @title Open Data Browser API
// @version 1.0.0
// @description Сервис поверх городского портала открытых данных: закрытия троп, дорожные ограничения и парки.
// @description
// @description Основные возможности:
// @description - Нормализация, удаление дублей и сортировка закрытий
// @description - Обратное геокодирование точек в районы с кешем на время жизни процесса
// @description - Прокси датасета парков и список парков с расстоянием до пользователя
// @description - Сессии страницы закрытий с переключением датасета и режима отображения

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

	"go.uber.org/zap"

	_ "github.com/opendata-browser/docs/swagger"
	"github.com/opendata-browser/internal/browser"
	"github.com/opendata-browser/internal/config"
	httpDelivery "github.com/opendata-browser/internal/delivery/http"
	"github.com/opendata-browser/internal/delivery/http/handler"
	"github.com/opendata-browser/internal/domain/repository"
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

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Open Data Browser")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("cache_backend", cfg.Geocode.CacheBackend),
	)

	// 3. Neighbourhood cache: в памяти процесса или общий Redis
	checks := map[string]httpDelivery.HealthChecker{}
	var neighbourhoodCache repository.NeighbourhoodCache

	switch cfg.Geocode.CacheBackend {
	case config.CacheBackendRedis:
		redisClient, err := cache.NewRedis(cfg, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		neighbourhoodCache = cache.NewRedisNeighbourhoodCache(redisClient)
		checks["redis"] = redisClient
	default:
		neighbourhoodCache = cache.NewMemoryNeighbourhoodCache()
	}

	// 4. Initialize open data client
	client := opendata.NewClient(&cfg.OpenData, cfg.Geocode.SearchRadiusMeters, log)

	// 5. Initialize Use Cases
	geocodeUC := usecase.NewGeocodeUseCase(client, neighbourhoodCache, &cfg.Geocode, log)
	closureUC := usecase.NewClosureUseCase(client, geocodeUC, &cfg.Map, log)
	parkUC := usecase.NewParkUseCase(client, log)

	sessions := browser.NewStore(cfg.Session.MaxSessions, closureUC, log)

	log.Info("Use cases initialized")

	// Фоновый прогрев кеша районов внутри процесса API
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	var workers *worker.Manager
	if cfg.Warmup.Enabled {
		workers = worker.NewManager(log)
		workers.Register(warmup.NewNeighbourhoodWarmer(closureUC, cfg.Warmup.Interval, log))
		if err := workers.Start(workerCtx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 6. Initialize HTTP Handlers
	pageHandler, err := handler.NewClosurePageHandler(sessions, closureUC, log)
	if err != nil {
		log.Fatal("Failed to parse page templates", zap.Error(err))
	}

	handlers := httpDelivery.Handlers{
		Closure:       handler.NewClosureHandler(closureUC, log),
		Park:          handler.NewParkHandler(parkUC, log),
		Neighbourhood: handler.NewNeighbourhoodHandler(geocodeUC, log),
		Session:       handler.NewSessionHandler(sessions, closureUC, log),
		Page:          pageHandler,
	}

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, handlers, checks)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if workers != nil {
		if err := workers.Stop(); err != nil {
			log.Error("Workers shutdown error", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
