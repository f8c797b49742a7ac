package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"credit-entry-go/internal/ledger"
	"credit-entry-go/internal/memory"
	"credit-entry-go/internal/models"
	"credit-entry-go/internal/session"
	"credit-entry-go/internal/vocab"

	"github.com/gin-gonic/gin"
)

// ---- helpers ----

func newTestServer() *gin.Engine {
	gin.SetMode(gin.TestMode)

	rows := memory.NewStore()
	ledgerService := ledger.NewService(rows)
	sessions := session.NewManager(vocab.Default())

	srv := NewServer(ledgerService, sessions, rows)
	return srv.Router()
}

func doRequest(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func startSession(t *testing.T, router *gin.Engine, cashier string) session.Session {
	t.Helper()
	w := doRequest(router, http.MethodPost, "/v1/sessions", models.StartSessionRequest{Cashier: cashier})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 starting session, got %d: %s", w.Code, w.Body.String())
	}
	var sess session.Session
	if err := json.Unmarshal(w.Body.Bytes(), &sess); err != nil {
		t.Fatalf("Failed to decode session: %v", err)
	}
	return sess
}

// ---- tests ----

func TestStartSessionRejectsUnknownCashier(t *testing.T) {
	router := newTestServer()

	w := doRequest(router, http.MethodPost, "/v1/sessions", models.StartSessionRequest{Cashier: "Nobody"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 for unknown cashier, got %d", w.Code)
	}

	w = doRequest(router, http.MethodPost, "/v1/sessions", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing cashier, got %d", w.Code)
	}
}

func TestAppendListDeleteFlow(t *testing.T) {
	router := newTestServer()
	sess := startSession(t, router, "Misrak")

	// Select a bank on the session, then submit an amount.
	w := doRequest(router, http.MethodPut, "/v1/sessions/"+sess.ID+"/bank", models.SelectBankRequest{Bank: "Abay"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 selecting bank, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodPost, "/v1/entries", map[string]interface{}{
		"session_id": sess.ID,
		"credit":     "250.5",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 appending entry, got %d: %s", w.Code, w.Body.String())
	}
	var entry models.Entry
	if err := json.Unmarshal(w.Body.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to decode entry: %v", err)
	}
	if entry.ID != 1 || entry.Cashier != "Misrak" || entry.Bank != "Abay" {
		t.Errorf("Unexpected entry: %+v", entry)
	}

	// The listing contains exactly the new entry.
	w = doRequest(router, http.MethodGet, "/v1/entries", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 listing entries, got %d", w.Code)
	}
	var listing models.EntriesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &listing); err != nil {
		t.Fatalf("Failed to decode listing: %v", err)
	}
	if listing.Count != 1 || listing.Entries[0].ID != entry.ID {
		t.Errorf("Unexpected listing: %+v", listing)
	}

	// Delete and re-list.
	w = doRequest(router, http.MethodDelete, "/v1/entries/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 deleting entry, got %d: %s", w.Code, w.Body.String())
	}
	var result models.DeleteResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode delete result: %v", err)
	}
	if !result.Deleted {
		t.Errorf("Expected deleted=true, got %+v", result)
	}

	w = doRequest(router, http.MethodDelete, "/v1/entries/1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on repeat delete, got %d", w.Code)
	}
}

func TestAppendEntryRequiresBankSelection(t *testing.T) {
	router := newTestServer()
	sess := startSession(t, router, "Emush")

	// No session bank and no per-entry bank.
	w := doRequest(router, http.MethodPost, "/v1/entries", map[string]interface{}{
		"session_id": sess.ID,
		"credit":     "10",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without a bank, got %d", w.Code)
	}

	// A per-entry bank override works without a session selection, and
	// free-text bank names stay accepted at the ledger boundary.
	w = doRequest(router, http.MethodPost, "/v1/entries", map[string]interface{}{
		"session_id": sess.ID,
		"bank":       "Some Future Bank",
		"credit":     "10",
	})
	if w.Code != http.StatusCreated {
		t.Errorf("Expected 201 with explicit bank, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAppendEntryRejectsNonPositiveCredit(t *testing.T) {
	router := newTestServer()
	sess := startSession(t, router, "Tigist")

	w := doRequest(router, http.MethodPost, "/v1/entries", map[string]interface{}{
		"session_id": sess.ID,
		"bank":       "CBE",
		"credit":     "0",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for zero credit, got %d", w.Code)
	}
}

func TestAppendEntryUnknownSession(t *testing.T) {
	router := newTestServer()

	w := doRequest(router, http.MethodPost, "/v1/entries", map[string]interface{}{
		"session_id": "missing",
		"bank":       "CBE",
		"credit":     "10",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown session, got %d", w.Code)
	}
}

func TestListEntriesSearchAndOrder(t *testing.T) {
	router := newTestServer()
	sess := startSession(t, router, "Misrak")

	for _, bank := range []string{"CBE", "Abay", "CBE"} {
		w := doRequest(router, http.MethodPost, "/v1/entries", map[string]interface{}{
			"session_id": sess.ID,
			"bank":       bank,
			"credit":     "100",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("Append failed: %d %s", w.Code, w.Body.String())
		}
	}

	// Case-insensitive search.
	w := doRequest(router, http.MethodGet, "/v1/entries?q=cbe", nil)
	var listing models.EntriesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &listing); err != nil {
		t.Fatalf("Failed to decode listing: %v", err)
	}
	if listing.Count != 2 {
		t.Errorf("Expected 2 CBE entries, got %d", listing.Count)
	}

	// Display order is descending by ID.
	w = doRequest(router, http.MethodGet, "/v1/entries", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &listing); err != nil {
		t.Fatalf("Failed to decode listing: %v", err)
	}
	if listing.Entries[0].ID != 3 || listing.Entries[2].ID != 1 {
		t.Errorf("Expected descending IDs, got %+v", listing.Entries)
	}
}

func TestSessionLogout(t *testing.T) {
	router := newTestServer()
	sess := startSession(t, router, "Adanu")

	w := doRequest(router, http.MethodDelete, "/v1/sessions/"+sess.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204 on logout, got %d", w.Code)
	}

	w = doRequest(router, http.MethodGet, "/v1/sessions/"+sess.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after logout, got %d", w.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestServer()

	w := doRequest(router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 from health check, got %d", w.Code)
	}
}
