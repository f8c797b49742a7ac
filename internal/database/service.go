package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"credit-entry-go/internal/models"
	"credit-entry-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.RowStore.
var _ store.RowStore = (*Service)(nil)

// Service implements store.RowStore on a local SQLite file. It mirrors the
// spreadsheet's flat table: five text columns plus an autoincrement surrogate
// that preserves append order, so row positions stay stable across reads.
type Service struct {
	db *sql.DB
}

func NewService(ctx context.Context, cfg models.DatabaseConfig) (*Service, error) {
	// Validate configuration
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening SQLite database", zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	// Set connection timeouts and limits
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test connection with timeout
	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	service := &Service{db: db}
	if err := service.initSchema(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}

	zap.L().Info("Database service initialized successfully")
	return service, nil
}

// NewServiceWithDB wraps an already-open connection. Used by tests with an
// in-memory database.
func NewServiceWithDB(db *sql.DB) (*Service, error) {
	service := &Service{db: db}
	if err := service.initSchema(); err != nil {
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}
	return service, nil
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
	}
}

func (s *Service) initSchema() error {
	schema := `
	-- One flat ledger table: ID, Timestamp, Cashier, Bank, Credit.
	-- pos preserves append order and never gets reused, so positions
	-- derived from ORDER BY pos are stable between a find and a delete.
	CREATE TABLE IF NOT EXISTS ledger_rows (
		pos INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		timestamp TEXT NOT NULL DEFAULT '',
		cashier TEXT NOT NULL DEFAULT '',
		bank TEXT NOT NULL DEFAULT '',
		credit TEXT NOT NULL DEFAULT ''
	);

	-- Index on the ID column for first-column lookups
	CREATE INDEX IF NOT EXISTS idx_ledger_rows_id ON ledger_rows(id);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Service) FetchAllRows(ctx context.Context) ([]store.Row, error) {
	zap.L().Debug("Querying ledger rows")

	rows, err := s.db.QueryContext(ctx, queryGetAllRows)
	if err != nil {
		zap.L().Error("Failed to query ledger rows", zap.Error(err))
		return nil, fmt.Errorf("unable to query ledger rows: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var result []store.Row
	for rows.Next() {
		var id, timestamp, cashier, bank, credit string
		if err := rows.Scan(&id, &timestamp, &cashier, &bank, &credit); err != nil {
			zap.L().Error("Failed to scan ledger row", zap.Error(err))
			return nil, fmt.Errorf("unable to scan ledger row: %w", err)
		}
		result = append(result, store.Row{id, timestamp, cashier, bank, credit})
	}

	// Check for errors during iteration
	if err := rows.Err(); err != nil {
		zap.L().Error("Error during ledger row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}

	return result, nil
}

func (s *Service) AppendRow(ctx context.Context, row store.Row) error {
	_, err := s.db.ExecContext(ctx, queryInsertRow,
		row.Get(store.ColID),
		row.Get(store.ColTimestamp),
		row.Get(store.ColCashier),
		row.Get(store.ColBank),
		row.Get(store.ColCredit))
	if err != nil {
		zap.L().Error("Failed to insert ledger row", zap.String("id", row.Get(store.ColID)), zap.Error(err))
		return fmt.Errorf("unable to insert ledger row: %w", err)
	}
	return nil
}

// FindRowByFirstColumn returns the absolute 1-based position of the first
// row whose ID column matches value. Position 1 is the (virtual) header row,
// matching the spreadsheet layout, so the first data row is position 2.
func (s *Service) FindRowByFirstColumn(ctx context.Context, value string) (int, error) {
	rows, err := s.db.QueryContext(ctx, queryGetRowIDs)
	if err != nil {
		return 0, fmt.Errorf("unable to query ledger row ids: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	position := 2
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("unable to scan ledger row id: %w", err)
		}
		if id == value {
			return position, nil
		}
		position++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("error iterating ledger row ids: %w", err)
	}
	return 0, store.ErrRowNotFound
}

func (s *Service) DeleteRow(ctx context.Context, position int) error {
	if position < 2 {
		return store.ErrInvalidPosition
	}

	var pos int64
	err := s.db.QueryRowContext(ctx, queryGetPosByOffset, position-2).Scan(&pos)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrInvalidPosition
		}
		return fmt.Errorf("unable to resolve row position: %w", err)
	}

	result, err := s.db.ExecContext(ctx, queryDeleteRowByPos, pos)
	if err != nil {
		zap.L().Error("Failed to delete ledger row", zap.Int("position", position), zap.Error(err))
		return fmt.Errorf("unable to delete ledger row: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrInvalidPosition
	}

	zap.L().Debug("Ledger row deleted", zap.Int("position", position))
	return nil
}
