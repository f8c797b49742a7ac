package common

import (
	"context"
	"fmt"
	"log"
	"strings"

	"credit-entry-go/internal/database"
	"credit-entry-go/internal/memory"
	"credit-entry-go/internal/models"
	"credit-entry-go/internal/sheets"
	"credit-entry-go/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Try to load .env file - if it doesn't exist, that's okay
	// Environment variables can be set via other means (shell export, docker, etc.)
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
		log.Println("Make sure to set environment variables via export or other means")
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// InitializeStore opens the row store backend selected by the configuration.
// A failure here is a session-fatal connect error: callers report it and
// exit rather than retrying.
func InitializeStore(ctx context.Context, cfg *models.Config) (store.RowStore, error) {
	switch cfg.Store.Backend {
	case "sheets":
		zap.L().Info("Using Google Sheets backend",
			zap.String("spreadsheet_id", cfg.Store.Sheets.SpreadsheetID))
		return sheets.NewService(ctx, cfg.Store.Sheets)
	case "sqlite":
		zap.L().Info("Using SQLite backend", zap.String("path", cfg.Store.Database.Path))
		return database.NewService(ctx, cfg.Store.Database)
	case "memory":
		zap.L().Info("Using in-memory backend (data is not persisted)")
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
