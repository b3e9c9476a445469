package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/opendata-browser/internal/config"
	"github.com/opendata-browser/internal/delivery/http/handler"
	"github.com/opendata-browser/internal/delivery/http/middleware"
	"github.com/opendata-browser/internal/pkg/errors"
	"github.com/opendata-browser/internal/pkg/metrics"
	"github.com/opendata-browser/internal/pkg/utils"
	"github.com/opendata-browser/internal/usecase/dto"
)

// HealthChecker - зависимость, состояние которой попадает в /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handlers - набор хендлеров сервера
type Handlers struct {
	Closure       *handler.ClosureHandler
	Park          *handler.ParkHandler
	Neighbourhood *handler.NeighbourhoodHandler
	Session       *handler.SessionHandler
	Page          *handler.ClosurePageHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
	checks   map[string]HealthChecker
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	handlers Handlers,
	checks map[string]HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Open Data Browser",
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
		checks:   checks,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - доступ к fiber.App для тестов
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	if s.config.Server.MetricsEnabled {
		s.app.Use(metrics.Middleware())
	}
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	if s.config.Server.MetricsEnabled {
		s.app.Get("/metrics", metrics.Handler())
	}

	// Прокси датасета парков, ответ портала отдаётся как есть
	s.app.Get("/api/parks", s.handlers.Park.Proxy)

	// HTML-страница закрытий
	s.app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/closures")
	})
	if s.handlers.Page != nil {
		s.app.Get("/closures", s.handlers.Page.Render)
		s.app.Post("/closures/dataset", s.handlers.Page.SelectDataset)
		s.app.Post("/closures/view", s.handlers.Page.SelectView)
		s.app.Post("/closures/toggle", s.handlers.Page.ToggleCard)
	}

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", s.health)

	// Parks
	api.Get("/parks", s.handlers.Park.List)

	// Closures
	api.Get("/closures", s.handlers.Closure.List)
	api.Get("/closures/embed", s.handlers.Closure.Embed)

	// Neighbourhoods
	api.Get("/neighbourhoods/resolve", s.handlers.Neighbourhood.Resolve)
	api.Delete("/neighbourhoods/cache", s.handlers.Neighbourhood.ResetCache)

	// Sessions
	api.Post("/sessions", s.handlers.Session.Create)
	api.Get("/sessions/:id", s.handlers.Session.Get)
	api.Put("/sessions/:id/dataset", s.handlers.Session.SelectDataset)
	api.Put("/sessions/:id/view", s.handlers.Session.SelectView)
	api.Post("/sessions/:id/cards/toggle", s.handlers.Session.ToggleCard)
}

// health godoc
// @Summary Состояние сервиса
// @Tags Health
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.HealthResponse}
// @Failure 503 {object} utils.SuccessResponse{data=dto.HealthResponse}
// @Router /api/v1/health [get]
func (s *Server) health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "healthy"}
	if len(s.checks) > 0 {
		resp.Checks = make(map[string]string, len(s.checks))
	}
	for name, check := range s.checks {
		if err := check.Health(c.Context()); err != nil {
			resp.Status = "degraded"
			resp.Checks[name] = err.Error()
			continue
		}
		resp.Checks[name] = "ok"
	}

	if resp.Status != "healthy" {
		c.Status(fiber.StatusServiceUnavailable)
	}
	return utils.SendSuccess(c, resp, nil)
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

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		appErr := errors.ErrInternalServer

		var fe *fiber.Error
		if stderrors.As(err, &fe) {
			code = fe.Code
			appErr = errors.New(errorCode(fe.Code), fe.Message, fe.Code)
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(utils.ErrorResponse{Error: appErr})
	}
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	}
	if status < fiber.StatusInternalServerError {
		return errors.CodeInvalidRequest
	}
	return errors.CodeInternalServer
}
