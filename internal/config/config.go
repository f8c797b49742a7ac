package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"credit-entry-go/internal/models"
)

func Load() (*models.Config, error) {
	connMaxLifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxIdleTime, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	sheetsTimeout, err := getEnvDuration("SHEETS_REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &models.Config{
		Store: models.StoreConfig{
			Backend: getEnvString("STORE_BACKEND", "sqlite"),
			Sheets: models.SheetsConfig{
				SpreadsheetID:   getEnvString("SHEETS_SPREADSHEET_ID", ""),
				CredentialsFile: getEnvString("SHEETS_CREDENTIALS_FILE", "service-account.json"),
				RequestTimeout:  sheetsTimeout,
			},
			Database: models.DatabaseConfig{
				Path:            getEnvString("DATABASE_PATH", "entries.db"),
				MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
				MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
				ConnMaxLifetime: connMaxLifetime,
				ConnMaxIdleTime: connMaxIdleTime,
				PingTimeout:     pingTimeout,
			},
		},
		Server: models.ServerConfig{
			Addr:            getEnvString("SERVER_ADDR", ":8080"),
			ShutdownTimeout: shutdownTimeout,
		},
		Vocab: models.VocabConfig{
			File: getEnvString("VOCAB_FILE", "vocab.yaml"),
		},
	}

	switch cfg.Store.Backend {
	case "sheets", "sqlite", "memory":
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (expected sheets, sqlite or memory)", cfg.Store.Backend)
	}

	if cfg.Store.Backend == "sheets" && cfg.Store.Sheets.SpreadsheetID == "" {
		return nil, fmt.Errorf("SHEETS_SPREADSHEET_ID is required when STORE_BACKEND=sheets")
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
