package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the second-precision format every entry timestamp is
// recorded with.
const TimestampLayout = "2006-01-02 15:04:05"

// Entry represents one recorded credit deposit in the ledger.
// Entries are immutable once appended; the only mutation is whole-row removal.
type Entry struct {
	ID        int64           `json:"id"`
	Timestamp string          `json:"timestamp"`
	Cashier   string          `json:"cashier"`
	Bank      string          `json:"bank"`
	Credit    decimal.Decimal `json:"credit"`
}

// NewEntry builds an entry stamped at the given time.
func NewEntry(id int64, cashier, bank string, credit decimal.Decimal, now time.Time) Entry {
	return Entry{
		ID:        id,
		Timestamp: now.Format(TimestampLayout),
		Cashier:   cashier,
		Bank:      bank,
		Credit:    credit,
	}
}
