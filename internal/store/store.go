package store

import (
	"context"
	"errors"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrRowNotFound     = errors.New("row not found")
	ErrInvalidPosition = errors.New("invalid row position")
)

// Column indexes of the ledger table, in header order.
const (
	ColID = iota
	ColTimestamp
	ColCashier
	ColBank
	ColCredit
	ColumnCount
)

// Headers is the fixed header row of the ledger table.
var Headers = []string{"ID", "Timestamp", "Cashier", "Bank", "Credit"}

// Row is one raw data row in header column order. Backends hand rows out
// untyped; the ledger service owns the strict parse into models.Entry.
type Row []string

// Get returns the column at index i, or "" when the row is short.
// Stores may contain ragged rows; callers must tolerate missing columns.
func (r Row) Get(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// RowStore defines the contract that every backend (Google Sheets, SQLite,
// in-memory) must satisfy.
//
// Row positions are absolute 1-based positions in the backing table: the
// header row is position 1, the first data row is position 2. FetchAllRows
// returns data rows only, header excluded, in store order.
type RowStore interface {
	FetchAllRows(ctx context.Context) ([]Row, error)
	AppendRow(ctx context.Context, row Row) error
	FindRowByFirstColumn(ctx context.Context, value string) (int, error)
	DeleteRow(ctx context.Context, position int) error

	// --- Lifecycle ---
	Close()
}
