package memory

import (
	"context"
	"sync"

	"credit-entry-go/internal/store"
)

// Compile-time check: *Store must satisfy store.RowStore.
var _ store.RowStore = (*Store)(nil)

// Store is an in-memory implementation of store.RowStore, used for tests and
// local runs without a spreadsheet or database. Rows live in a slice in
// append order; positions follow the sheet convention (first data row = 2).
type Store struct {
	mu   sync.Mutex
	rows []store.Row
}

func NewStore() *Store {
	return &Store{rows: make([]store.Row, 0)}
}

func (s *Store) FetchAllRows(_ context.Context) ([]store.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy so callers can't mutate internal state.
	copied := make([]store.Row, len(s.rows))
	for i, r := range s.rows {
		row := make(store.Row, len(r))
		copy(row, r)
		copied[i] = row
	}
	return copied, nil
}

func (s *Store) AppendRow(_ context.Context, row store.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make(store.Row, len(row))
	copy(stored, row)
	s.rows = append(s.rows, stored)
	return nil
}

func (s *Store) FindRowByFirstColumn(_ context.Context, value string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.rows {
		if r.Get(store.ColID) == value {
			return i + 2, nil
		}
	}
	return 0, store.ErrRowNotFound
}

func (s *Store) DeleteRow(_ context.Context, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := position - 2
	if idx < 0 || idx >= len(s.rows) {
		return store.ErrInvalidPosition
	}
	s.rows = append(s.rows[:idx], s.rows[idx+1:]...)
	return nil
}

func (s *Store) Close() {}
