package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"credit-entry-go/internal/ledger"
	"credit-entry-go/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListEntries returns the ledger, filtered by the optional q parameter and
// sorted newest-ID-first for display.
func (s *Server) ListEntries(c *gin.Context) {
	entries, err := s.ledger.ListEntries(c.Request.Context())
	if err != nil {
		zap.L().Warn("Ledger read failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "ledger is unreachable, try again"})
		return
	}

	entries = ledger.Filter(entries, c.Query("q"))
	ledger.SortByIDDescending(entries)

	c.JSON(http.StatusOK, models.EntriesResponse{Entries: entries, Count: len(entries)})
}

// AppendEntry records one credit deposit against an open session (the
// "submit amount" intent). The cashier always comes from the session; the
// bank defaults to the session's selected bank unless overridden per entry.
func (s *Server) AppendEntry(c *gin.Context) {
	var req models.AppendEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	sess, err := s.sessions.Get(req.SessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "session not found"})
		return
	}

	bank := req.Bank
	if bank == "" {
		bank = sess.SelectedBank
	}

	entry, err := s.ledger.AppendEntry(c.Request.Context(), sess.Cashier, bank, req.Credit, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrBankRequired):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "select a bank before submitting"})
		case errors.Is(err, ledger.ErrInvalidCredit):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "credit must be a positive amount"})
		default:
			// Write failure: echo the attempted operation so the client can
			// keep its form state and retry without re-entering data.
			zap.L().Error("Append failed",
				zap.String("cashier", sess.Cashier),
				zap.String("bank", bank),
				zap.String("credit", req.Credit.String()),
				zap.Error(err))
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error: fmt.Sprintf("failed to save entry (%s, %s): ledger is unreachable", bank, req.Credit.String()),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// DeleteEntry removes one entry by ID (the post-confirmation delete call).
func (s *Server) DeleteEntry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "entry id must be numeric"})
		return
	}

	if err := s.ledger.DeleteEntry(c.Request.Context(), id); err != nil {
		if errors.Is(err, ledger.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, models.DeleteResult{
				ID:      id,
				Deleted: false,
				Message: fmt.Sprintf("could not find entry ID %d", id),
			})
			return
		}
		zap.L().Error("Delete failed", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: fmt.Sprintf("failed to delete entry ID %d: ledger is unreachable", id),
		})
		return
	}

	c.JSON(http.StatusOK, models.DeleteResult{
		ID:      id,
		Deleted: true,
		Message: fmt.Sprintf("entry ID %d deleted successfully", id),
	})
}
