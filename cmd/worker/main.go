package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/commute-microservice/internal/app"
	"github.com/commute-microservice/internal/config"
	"github.com/commute-microservice/internal/domain/repository"
	"github.com/commute-microservice/internal/pkg/logger"
	"github.com/commute-microservice/internal/repository/postgres"
	redisRepo "github.com/commute-microservice/internal/repository/redis"
	"github.com/commute-microservice/internal/usecase"
	"github.com/commute-microservice/internal/worker"
	"github.com/commute-microservice/internal/worker/report"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
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

	log.Info("Starting Commute Report Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Duration("stream_read_timeout", cfg.Worker.StreamReadTimeout),
		zap.Duration("claim_min_idle", cfg.Worker.ClaimMinIdle))

	// 3. Connect to Redis
	redisClient, err := redisRepo.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Optional report archive
	var archive repository.ReportRepository
	if cfg.Archive.Enabled {
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()
		archive = postgres.NewReportRepository(db, log)
	}

	// 5. Initialize repositories and use cases
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
	reportUC := usecase.NewCommuteReportUseCase(app.NewReportBuilder(cfg, log), archive, log)

	// 6. Initialize workers
	reportWorker := report.NewCommuteReportWorker(
		streamRepo,
		reportUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.BatchSize,
		cfg.Worker.ClaimMinIdle,
		log,
	)

	// 7. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(worker.DefaultShutdownTimeout, log)
	workerManager.Register(reportWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Stop first so in-flight reports finish, then cancel
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	log.Info("Worker shutdown complete")
}
