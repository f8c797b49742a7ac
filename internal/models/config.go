package models

import "time"

// Config represents the application configuration
type Config struct {
	Store  StoreConfig
	Server ServerConfig
	Vocab  VocabConfig
}

// StoreConfig selects and tunes the row store backend
type StoreConfig struct {
	Backend  string // "sheets", "sqlite" or "memory"
	Sheets   SheetsConfig
	Database DatabaseConfig
}

// SheetsConfig holds Google Sheets backend settings
type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsFile string
	RequestTimeout  time.Duration
}

// DatabaseConfig holds SQLite backend settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// VocabConfig points at the cashier/bank vocabulary file
type VocabConfig struct {
	File string
}
