package models

import "github.com/shopspring/decimal"

// StartSessionRequest opens a session for a cashier.
type StartSessionRequest struct {
	Cashier string `json:"cashier"`
}

// SelectBankRequest records the bank selection on an open session.
type SelectBankRequest struct {
	Bank string `json:"bank"`
}

// AppendEntryRequest submits one credit amount against an open session.
// Bank is optional; when empty the session's selected bank is used.
type AppendEntryRequest struct {
	SessionID string          `json:"session_id"`
	Bank      string          `json:"bank,omitempty"`
	Credit    decimal.Decimal `json:"credit"`
}

// EntriesResponse is the payload for ledger listings.
type EntriesResponse struct {
	Entries []Entry `json:"entries"`
	Count   int     `json:"count"`
}

// DeleteResult reports the outcome of a delete so the client can surface
// the identifying details of the attempted operation.
type DeleteResult struct {
	ID      int64  `json:"id"`
	Deleted bool   `json:"deleted"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
