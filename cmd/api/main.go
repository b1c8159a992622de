package main

// @title Commute Report API
// @version 1.0.0
// @description Сервис отчётов о поездке: геокодирует почтовый индекс, считает маршрут на общественном транспорте до адреса назначения и находит ближайшие станции и начальные школы с пешеходными расстояниями.

// @contact.name API Support
// @contact.email support@commute-microservice.com

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

	"github.com/commute-microservice/internal/app"
	"github.com/commute-microservice/internal/config"
	httpDelivery "github.com/commute-microservice/internal/delivery/http"
	"github.com/commute-microservice/internal/delivery/http/handler"
	"github.com/commute-microservice/internal/domain/repository"
	"github.com/commute-microservice/internal/pkg/logger"
	"github.com/commute-microservice/internal/repository/postgres"
	"github.com/commute-microservice/internal/usecase"
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

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}

	log.Info("Starting Commute Report Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("walking_provider", cfg.Maps.WalkingProvider),
		zap.Bool("archive_enabled", cfg.Archive.Enabled),
	)

	// 3. Optional report archive
	var (
		archive repository.ReportRepository
		db      *postgres.DB
		checks  = map[string]httpDelivery.HealthChecker{}
	)
	if cfg.Archive.Enabled {
		db, err = postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = db.Health(ctx)
		cancel()
		if err != nil {
			log.Fatal("PostgreSQL health check failed", zap.Error(err))
		}

		archive = postgres.NewReportRepository(db, log)
		checks["postgres"] = db
		log.Info("Report archive connected")
	}

	// 4. Initialize Use Cases
	builder := app.NewReportBuilder(cfg, log)
	reportUC := usecase.NewCommuteReportUseCase(builder, archive, log)

	log.Info("Use cases initialized")

	// 5. Initialize HTTP Handlers and Server
	commuteHandler := handler.NewCommuteHandler(reportUC, log)
	server := httpDelivery.NewServer(cfg, log, commuteHandler, checks)

	log.Info("HTTP server initialized")

	// 6. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if db != nil {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
