package http

import (
	"context"
	"errors"
	"time"

	_ "github.com/commute-microservice/docs"
	"github.com/commute-microservice/internal/config"
	"github.com/commute-microservice/internal/delivery/http/handler"
	"github.com/commute-microservice/internal/delivery/http/middleware"
	apperrors "github.com/commute-microservice/internal/pkg/errors"
	"github.com/commute-microservice/internal/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// HealthChecker - зависимость, состояние которой показывает /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	commuteHandler *handler.CommuteHandler
	checks         map[string]HealthChecker
}

// NewServer - создание нового HTTP сервера.
// checks - опциональные зависимости (postgres), их состояние попадает в /health.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	commuteHandler *handler.CommuteHandler,
	checks map[string]HealthChecker,
) *Server {
	// отчёт делает несколько последовательных шагов по RequestTimeout каждый
	writeTimeout := 4*cfg.Maps.RequestTimeout + 5*time.Second

	app := fiber.New(fiber.Config{
		AppName:      "Commute Report Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		commuteHandler: commuteHandler,
		checks:         checks,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.health)

	commute := api.Group("/commute")
	commute.Post("/report", s.commuteHandler.CreateReport)
	commute.Get("/report", s.commuteHandler.CreateReportGET)
	commute.Get("/reports/:id", s.commuteHandler.GetReport)
}

// health godoc
// @Summary Проверка состояния сервиса
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	code := fiber.StatusOK
	components := fiber.Map{}

	for name, check := range s.checks {
		if err := check.Health(ctx); err != nil {
			s.logger.Warn("Health check failed", zap.String("component", name), zap.Error(err))
			components[name] = "unhealthy"
			status = "degraded"
			code = fiber.StatusServiceUnavailable
			continue
		}
		components[name] = "healthy"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":     status,
		"components": components,
		"time":       time.Now(),
	})
}

// App возвращает fiber.App (для тестов)
func (s *Server) App() *fiber.App {
	return s.app
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

// customErrorHandler - ошибки, не обработанные хендлерами (404 маршрута, паники)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(utils.ErrorResponse{
				Error: apperrors.New("HTTP_ERROR", fe.Message, fe.Code),
			})
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return utils.SendError(c, err)
	}
}
