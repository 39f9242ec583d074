package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "lending-ledger/docs"
	"lending-ledger/internal/api"
	"lending-ledger/internal/batch"
	"lending-ledger/internal/config"
	"lending-ledger/internal/domain/ledger"
	"lending-ledger/internal/domain/report"
	"lending-ledger/internal/event"
	"lending-ledger/internal/infrastructure/cache"
	"lending-ledger/internal/infrastructure/database/postgres"
	"lending-ledger/internal/infrastructure/logging"
	"lending-ledger/internal/infrastructure/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// @title Lending Ledger API
// @version 1.0
// @description This is the API documentation for the Lending Ledger service.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	dbPool := initializeDatabase(cfg, logger)
	defer closeDatabase(dbPool, logger)

	reportCache := initializeCache(cfg, logger)
	publisher := initializePublisher(cfg, logger)
	archive := initializeArchive(cfg, logger)

	ledgerService, reportService := initializeServices(dbPool, publisher, reportCache, logger)

	reportJob := batch.NewMonthlyReportJob(reportService, archive, logger)

	cronScheduler := startBatchJobs(cfg, logger, reportJob)
	router := api.SetupRouter(ledgerService, reportService, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

func initializeDatabase(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(context.Background(), cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

// initializeCache returns nil when Redis is disabled; both services treat a
// nil cache as caching switched off.
func initializeCache(cfg *config.Config, logger *slog.Logger) *cache.RedisCache {
	if !cfg.Redis.Enabled {
		logger.Info("Redis cache disabled, report caching is off.")
		return nil
	}
	reportCache, err := cache.NewRedisCache(context.Background(), cfg.Redis, logger)
	if err != nil {
		logger.Error("Failed to initialize Redis cache", "error", err)
		os.Exit(1)
	}
	return reportCache
}

func initializePublisher(cfg *config.Config, logger *slog.Logger) event.Publisher {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled, domain events will not be published.")
		return nil
	}

	url := fmt.Sprintf("amqp://%s:%s@%s:%d/",
		cfg.RabbitMQ.Username, cfg.RabbitMQ.Password, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	conn, err := amqp.Dial(url)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}

	publisher, err := event.NewRabbitMQPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to initialize RabbitMQ publisher", "error", err)
		os.Exit(1)
	}
	return publisher
}

func initializeArchive(cfg *config.Config, logger *slog.Logger) batch.Archiver {
	if !cfg.S3.Enabled {
		logger.Info("S3 archiving disabled, monthly reports will not be uploaded.")
		return nil
	}
	s3Client, err := storage.NewS3Client(cfg.S3)
	if err != nil {
		logger.Error("Failed to initialize S3 client", "error", err)
		os.Exit(1)
	}
	return s3Client
}

func initializeServices(dbPool *pgxpool.Pool, publisher event.Publisher, reportCache *cache.RedisCache, logger *slog.Logger) (ledger.Service, report.Service) {
	logger.Info("Initializing application components...")
	repo := postgres.NewLedgerRepository(dbPool, logger)

	var mutationCache ledger.Cache
	var readCache report.Cache
	if reportCache != nil {
		mutationCache = reportCache
		readCache = reportCache
	}

	ledgerService := ledger.NewService(repo, publisher, mutationCache, logger)
	reportService := report.NewService(repo, readCache, logger)
	return ledgerService, reportService
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.", "error", err)
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server graceful shutdown failed", "error", err)
		} else {
			logger.Info("HTTP server shutdown initiated.")
		}
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}
	logger.Info("Waiting for server goroutine to confirm exit...")
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}

	logger.Info("Application shutdown process complete.")
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, reportJob *batch.MonthlyReportJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.MonthlyReportSchedule
	if scheduleSpec == "" {
		scheduleSpec = "0 6 1 * *"
		logger.Warn("Monthly report schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Batch.MonthlyReportTimeout
	if jobTimeout <= 0 {
		jobTimeout = 10 * time.Minute
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "MonthlyReport")
		jobLogger.Info("Cron triggered: Running monthly report job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := reportJob.Run(ctx); runErr != nil {
			jobLogger.Error("Monthly report job finished with error", slog.Any("error", runErr))
		} else {
			jobLogger.Info("Monthly report job finished successfully.")
		}
	}))

	if err != nil {
		logger.Error("Failed to schedule monthly report job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled monthly report job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}
