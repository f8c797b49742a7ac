package session

import (
	"errors"
	"sync"
	"time"

	"credit-entry-go/internal/vocab"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sentinel errors for session operations
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownCashier  = errors.New("unknown cashier")
	ErrUnknownBank     = errors.New("unknown bank")
)

// Session is the per-cashier context carried between requests: who is
// entering data and which bank button is currently selected. It exists from
// cashier selection until log-out; nothing about it is global.
type Session struct {
	ID           string    `json:"id"`
	Cashier      string    `json:"cashier"`
	SelectedBank string    `json:"selected_bank,omitempty"`
	StartedAt    time.Time `json:"started_at"`
}

// Manager tracks open sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	vocab    *vocab.Vocabulary
}

func NewManager(v *vocab.Vocabulary) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		vocab:    v,
	}
}

// Start opens a session for a cashier. The cashier must belong to the
// closed cashier vocabulary.
func (m *Manager) Start(cashier string) (*Session, error) {
	if !m.vocab.HasCashier(cashier) {
		return nil, ErrUnknownCashier
	}

	s := &Session{
		ID:        uuid.New().String(),
		Cashier:   cashier,
		StartedAt: time.Now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	zap.L().Info("Session started", zap.String("session_id", s.ID), zap.String("cashier", cashier))
	return copyOf(s), nil
}

// Get returns a snapshot of the session, or ErrSessionNotFound.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return copyOf(s), nil
}

// SelectBank records the bank selection on an open session. The bank must
// belong to the bank vocabulary; free-text banks reach the ledger only via
// the explicit per-entry override, never via the session selection.
func (m *Manager) SelectBank(id, bank string) (*Session, error) {
	if !m.vocab.HasBank(bank) {
		return nil, ErrUnknownBank
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.SelectedBank = bank

	zap.L().Debug("Bank selected", zap.String("session_id", id), zap.String("bank", bank))
	return copyOf(s), nil
}

// End discards the session (log out). Ending an unknown session is
// ErrSessionNotFound.
func (m *Manager) End(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)

	zap.L().Info("Session ended", zap.String("session_id", id))
	return nil
}

func copyOf(s *Session) *Session {
	c := *s
	return &c
}
