package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
	"webapp/internal/adapters/eventbroker/nats"
	"webapp/internal/adapters/handlers/http/chi"
	file2 "webapp/internal/adapters/handlers/http/chi/v1/file"
	"webapp/internal/adapters/handlers/http/chi/v1/health"
	"webapp/internal/adapters/metrics"
	"webapp/internal/adapters/repository/postgres"
	"webapp/internal/adapters/storage/minio"
	"webapp/internal/adapters/storage/s3"
	"webapp/internal/config"
	"webapp/internal/core/port"
	"webapp/internal/core/service/file"
	"webapp/internal/core/service/healthcheck"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}(db)
	logger.Info("db connection established")

	recorder := metrics.NewRecorder(prometheus.NewRegistry())

	//storage
	storage, err := initStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	logger.Info("storage ready", "driver", cfg.Storage.Driver, "bucket", storage.Bucket())

	//events
	publisher, err := initPublisher(ctx, cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to init event publisher", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close event publisher", "error", err)
		}
	}()

	//repositories
	fileRepo := metrics.InstrumentFileRepository(postgres.NewSqlFileRepository(db), recorder)
	healthRepo := metrics.InstrumentHealthCheckRepository(postgres.NewSqlHealthCheckRepository(db), recorder)

	fileService := file.NewFileService(
		fileRepo,
		metrics.InstrumentStorage(storage, recorder),
		metrics.InstrumentPublisher(publisher, recorder),
		logger,
	)
	healthService := healthcheck.NewHealthCheckService(healthRepo, logger)

	//http
	fileHandler := file2.NewFileHandlerV1(fileService, logger)
	healthHandler := health.NewHealthHandlerV1(healthService, logger)

	router := chi.NewRouter(logger, healthHandler, fileHandler, recorder, chi.Options{
		RequestTimeout: cfg.Server.RequestTimeout,
		MaxBodySize:    cfg.Upload.MaxSize,
		MaxMemory:      cfg.Upload.MaxMemory,
	})
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", recorder.Handler())
		metricsServer = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("starting metrics server", "addr", cfg.Metrics.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("failed to start metrics server", "error", err)
			}
		}()
	}

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", "error", err)
		}
	}

	wg.Wait()
	logger.Info("app shutdown complete")

}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}

func initStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (port.FileStorage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverS3:
		return s3.NewAdapter(ctx, cfg.S3, logger)
	default:
		return minio.NewAdapter(ctx, cfg.Minio, logger)
	}
}

func initPublisher(ctx context.Context, cfg config.NATSConfig, logger *slog.Logger) (port.EventPublisher, error) {
	if cfg.URL == "" {
		logger.Info("no NATS_URL set, consistency events are only logged")
		return nats.NewNoopPublisher(logger), nil
	}
	return nats.NewNATSPublisher(ctx, cfg, logger)
}
