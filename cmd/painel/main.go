package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"painel/internal/amqp"
	"painel/internal/cli"
	"painel/internal/config"
	apphttp "painel/internal/http"
	applog "painel/internal/log"
	"painel/internal/services"
	"painel/internal/sources/excel"
	"painel/internal/storage"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)

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

	refresh := services.NewRefreshService(fetcher, excel.NewReader(), cli.Schemas(), fileIDs)

	// Storage is the fallback when the sources are unreachable; the
	// server still runs without it.
	var snapshots apphttp.SnapshotLoader
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Warn("Snapshot storage unavailable, serving without fallback",
			applog.FieldError, err, "path", cfg.SQLiteDBPath)
	} else {
		defer repo.Close()
		snapshots = repo
	}

	srv := apphttp.NewServer(apphttp.ServerConfig{
		Addr:     ":" + cfg.Port,
		PageSize: cfg.PageSize,
		CacheTTL: cfg.CacheTTL,
	}, refresh, snapshots, logger.WithComponent(applog.ComponentHTTP))

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The worker announces new snapshots over AMQP; consuming them lets
	// the server drop its cached dataset immediately instead of waiting
	// out the TTL. Optional: without AMQP the cache just expires.
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, serving with TTL-only cache expiry",
				applog.FieldError, err)
		} else {
			defer amqpClient.Close()
			go func() {
				err := amqpClient.ConsumeDatasetRefreshed(ctx, func(msg *amqp.DatasetRefreshedMessage) error {
					srv.InvalidateDataset(msg.Version)
					return nil
				})
				if err != nil && !errors.Is(err, context.Canceled) {
					logger.Warn("Refresh announcement consumer stopped",
						applog.FieldError, err)
				}
			}()
		}
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting painel server",
		"port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
