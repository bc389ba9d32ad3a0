// Package cli provides common initialization shared by cmd/painel and
// cmd/painel-worker.
package cli

import (
	"context"
	"log/slog"

	"github.com/joho/godotenv"

	"painel/internal/config"
	applog "painel/internal/log"
	"painel/internal/pipeline"
	"painel/internal/sources"
	"painel/internal/sources/drive"
	"painel/internal/sources/memory"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging for the named component and
// sets it as the process default.
func SetupLogger(component string) *applog.Logger {
	logger := applog.New(component, slog.LevelInfo)
	applog.SetDefault(logger)
	return logger
}

// Schemas lists every source sheet the pipeline knows how to load.
func Schemas() []pipeline.Schema {
	return []pipeline.Schema{
		pipeline.Receipts(),
		pipeline.ServiceOrders(),
		pipeline.Expenses(),
	}
}

// BuildFetcher picks the workbook source: Google Drive in production, a
// local directory for development. The memory backend keys files by
// name, so unconfigured IDs default to the source names.
func BuildFetcher(ctx context.Context, cfg *config.Config) (sources.FileFetcher, map[string]string, error) {
	fileIDs := cfg.FileIDs()

	switch cfg.DataBackend {
	case "drive":
		client, err := drive.NewFromEnv(ctx)
		if err != nil {
			return nil, nil, err
		}
		return client, fileIDs, nil
	default:
		if len(fileIDs) == 0 {
			fileIDs = map[string]string{
				"receipts":       "receipts",
				"service_orders": "service_orders",
				"expenses":       "expenses",
			}
		}
		return memory.NewFromDir(cfg.DataDir), fileIDs, nil
	}
}
