package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"credit-entry-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDb(t *testing.T) (*Service, func()) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	service, err := NewServiceWithDB(db)
	if err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return service, cleanup
}

func TestAppendAndFetchRows(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	rows := []store.Row{
		{"1", "2024-05-01 09:00:00", "Misrak", "Abay", "100.00"},
		{"2", "2024-05-01 09:10:00", "Emush", "CBE", "250.50"},
	}
	for _, r := range rows {
		if err := service.AppendRow(ctx, r); err != nil {
			t.Fatalf("AppendRow failed: %v", err)
		}
	}

	fetched, err := service.FetchAllRows(ctx)
	if err != nil {
		t.Fatalf("FetchAllRows failed: %v", err)
	}
	if len(fetched) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(fetched))
	}

	// Store order must be append order.
	if fetched[0].Get(store.ColID) != "1" || fetched[1].Get(store.ColID) != "2" {
		t.Errorf("Rows out of append order: %v", fetched)
	}
	if fetched[1].Get(store.ColBank) != "CBE" {
		t.Errorf("Expected bank CBE, got %q", fetched[1].Get(store.ColBank))
	}
	if fetched[1].Get(store.ColCredit) != "250.50" {
		t.Errorf("Expected credit 250.50, got %q", fetched[1].Get(store.ColCredit))
	}
}

func TestFindRowByFirstColumn(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	ids := []string{"1", "3", "7"}
	for _, id := range ids {
		row := store.Row{id, "2024-05-01 09:00:00", "Tigist", "Nib", "50.00"}
		if err := service.AppendRow(ctx, row); err != nil {
			t.Fatalf("AppendRow failed: %v", err)
		}
	}

	// First data row lives at position 2 (position 1 is the header).
	pos, err := service.FindRowByFirstColumn(ctx, "1")
	if err != nil {
		t.Fatalf("FindRowByFirstColumn failed: %v", err)
	}
	if pos != 2 {
		t.Errorf("Expected position 2, got %d", pos)
	}

	pos, err = service.FindRowByFirstColumn(ctx, "7")
	if err != nil {
		t.Fatalf("FindRowByFirstColumn failed: %v", err)
	}
	if pos != 4 {
		t.Errorf("Expected position 4, got %d", pos)
	}

	_, err = service.FindRowByFirstColumn(ctx, "99")
	if !errors.Is(err, store.ErrRowNotFound) {
		t.Errorf("Expected ErrRowNotFound, got %v", err)
	}
}

func TestDeleteRow(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		row := store.Row{id, "2024-05-01 09:00:00", "Adanu", "Awash", "10.00"}
		if err := service.AppendRow(ctx, row); err != nil {
			t.Fatalf("AppendRow failed: %v", err)
		}
	}

	pos, err := service.FindRowByFirstColumn(ctx, "2")
	if err != nil {
		t.Fatalf("FindRowByFirstColumn failed: %v", err)
	}
	if err := service.DeleteRow(ctx, pos); err != nil {
		t.Fatalf("DeleteRow failed: %v", err)
	}

	fetched, err := service.FetchAllRows(ctx)
	if err != nil {
		t.Fatalf("FetchAllRows failed: %v", err)
	}
	if len(fetched) != 2 {
		t.Fatalf("Expected 2 rows after delete, got %d", len(fetched))
	}
	if fetched[0].Get(store.ColID) != "1" || fetched[1].Get(store.ColID) != "3" {
		t.Errorf("Unexpected rows after delete: %v", fetched)
	}

	// Positions shift up after a delete, exactly like spreadsheet rows.
	pos, err = service.FindRowByFirstColumn(ctx, "3")
	if err != nil {
		t.Fatalf("FindRowByFirstColumn failed: %v", err)
	}
	if pos != 3 {
		t.Errorf("Expected position 3 after shift, got %d", pos)
	}
}

func TestDeleteRowInvalidPosition(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	if err := service.DeleteRow(ctx, 1); !errors.Is(err, store.ErrInvalidPosition) {
		t.Errorf("Expected ErrInvalidPosition for header position, got %v", err)
	}
	if err := service.DeleteRow(ctx, 5); !errors.Is(err, store.ErrInvalidPosition) {
		t.Errorf("Expected ErrInvalidPosition past end of table, got %v", err)
	}
}
