package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"credit-entry-go/internal/models"
	"credit-entry-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Sentinel errors for ledger operations
var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrBankRequired  = errors.New("bank is required")
	ErrInvalidCredit = errors.New("credit must be positive")
)

// Service mediates all reads and writes to the ledger: it assigns IDs,
// shapes rows and funnels every mutation through a single-writer mutex so
// the read-then-append ID computation and the find-then-delete sequence
// cannot interleave within one process.
type Service struct {
	store store.RowStore
	mu    sync.Mutex
}

func NewService(rowStore store.RowStore) *Service {
	return &Service{store: rowStore}
}

// ListEntries fetches all rows from the store and parses them into entries,
// preserving store order (oldest first). Rows whose ID or credit column does
// not parse are skipped with a warning rather than failing the whole read.
func (s *Service) ListEntries(ctx context.Context) ([]models.Entry, error) {
	rows, err := s.store.FetchAllRows(ctx)
	if err != nil {
		return []models.Entry{}, fmt.Errorf("reading ledger: %w", err)
	}
	return parseRows(rows), nil
}

func parseRows(rows []store.Row) []models.Entry {
	entries := make([]models.Entry, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		entry, ok := parseRow(row)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	if skipped > 0 {
		zap.L().Warn("Skipped unparseable ledger rows", zap.Int("count", skipped))
	}
	return entries
}

// parseRow converts one raw store row into a typed entry. Unparseable rows
// are tolerated defects, not errors.
func parseRow(row store.Row) (models.Entry, bool) {
	id, err := strconv.ParseInt(row.Get(store.ColID), 10, 64)
	if err != nil {
		return models.Entry{}, false
	}
	credit, err := decimal.NewFromString(row.Get(store.ColCredit))
	if err != nil {
		return models.Entry{}, false
	}
	return models.Entry{
		ID:        id,
		Timestamp: row.Get(store.ColTimestamp),
		Cashier:   row.Get(store.ColCashier),
		Bank:      row.Get(store.ColBank),
		Credit:    credit,
	}, true
}

// NextID computes max(numeric IDs) + 1 over a raw snapshot, or 1 when the
// snapshot is empty or holds no parseable numeric ID. Non-numeric IDs are
// treated as absent.
func NextID(rows []store.Row) int64 {
	var maxID int64
	found := false
	for _, row := range rows {
		id, err := strconv.ParseInt(row.Get(store.ColID), 10, 64)
		if err != nil {
			continue
		}
		if !found || id > maxID {
			maxID = id
			found = true
		}
	}
	if !found {
		return 1
	}
	return maxID + 1
}

// AppendEntry reads the current snapshot, assigns the next ID and appends a
// new row stamped at now. The bank value is not checked against the bank
// vocabulary here: the ledger accepts whatever bank name it is handed, and
// membership enforcement stays a session concern.
func (s *Service) AppendEntry(ctx context.Context, cashier, bank string, credit decimal.Decimal, now time.Time) (*models.Entry, error) {
	if bank == "" {
		return nil, ErrBankRequired
	}
	if credit.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidCredit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.store.FetchAllRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading ledger before append: %w", err)
	}

	entry := models.NewEntry(NextID(rows), cashier, bank, credit, now)
	row := store.Row{
		strconv.FormatInt(entry.ID, 10),
		entry.Timestamp,
		entry.Cashier,
		entry.Bank,
		entry.Credit.String(),
	}

	if err := s.store.AppendRow(ctx, row); err != nil {
		return nil, fmt.Errorf("appending entry %d: %w", entry.ID, err)
	}

	zap.L().Info("Entry appended",
		zap.Int64("id", entry.ID),
		zap.String("cashier", entry.Cashier),
		zap.String("bank", entry.Bank),
		zap.String("credit", entry.Credit.String()))
	return &entry, nil
}

// DeleteEntry removes the row whose ID column matches id. Returns
// ErrEntryNotFound when no row matches; deleting an already-deleted ID is
// the same not-found outcome and leaves the table unchanged.
func (s *Service) DeleteEntry(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	position, err := s.store.FindRowByFirstColumn(ctx, strconv.FormatInt(id, 10))
	if err != nil {
		if errors.Is(err, store.ErrRowNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("locating entry %d: %w", id, err)
	}

	if err := s.store.DeleteRow(ctx, position); err != nil {
		return fmt.Errorf("deleting entry %d at position %d: %w", id, position, err)
	}

	zap.L().Info("Entry deleted", zap.Int64("id", id), zap.Int("position", position))
	return nil
}
