package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"painel/internal/amqp"
	"painel/internal/cli"
	"painel/internal/config"
	applog "painel/internal/log"
	"painel/internal/services"
	"painel/internal/sources/excel"
	"painel/internal/storage"
	"painel/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)

	logger.Info("Starting painel-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	fetcher, fileIDs, err := cli.BuildFetcher(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to initialize data backend",
			applog.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository",
			applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// The announcement channel is optional: without AMQP the worker
	// still refreshes and snapshots, consumers just poll storage.
	var publisher worker.Publisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, refresh announcements disabled",
				applog.FieldError, err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
		}
	}

	refresh := services.NewRefreshService(fetcher, excel.NewReader(), cli.Schemas(), fileIDs)
	refreshWorker := worker.NewRefreshWorker(refresh, repo, publisher,
		worker.RefreshWorkerConfig{Interval: cfg.RefreshInterval})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := refreshWorker.Start(ctx); err != nil {
		logger.Error("Failed to start refresh worker", applog.FieldError, err)
		os.Exit(1)
	}

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	logger.Info("Shutdown signal received", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := refreshWorker.Stop(shutdownCtx); err != nil {
		logger.Error("Worker shutdown error", applog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
