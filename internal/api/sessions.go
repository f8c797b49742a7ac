package api

import (
	"errors"
	"net/http"

	"credit-entry-go/internal/models"
	"credit-entry-go/internal/session"

	"github.com/gin-gonic/gin"
)

// StartSession opens a session for a cashier (the "select cashier" intent).
func (s *Server) StartSession(c *gin.Context) {
	var req models.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.Cashier == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "cashier is required"})
		return
	}

	sess, err := s.sessions.Start(req.Cashier)
	if err != nil {
		if errors.Is(err, session.ErrUnknownCashier) {
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: "unknown cashier"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to start session"})
		return
	}

	c.JSON(http.StatusCreated, sess)
}

// GetSession returns the state of an open session.
func (s *Server) GetSession(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "session not found"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

// SelectBank records the bank selection on an open session.
func (s *Server) SelectBank(c *gin.Context) {
	var req models.SelectBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	sess, err := s.sessions.SelectBank(c.Param("id"), req.Bank)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "session not found"})
		case errors.Is(err, session.ErrUnknownBank):
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: "unknown bank"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to select bank"})
		}
		return
	}

	c.JSON(http.StatusOK, sess)
}

// EndSession logs the cashier out and discards the session context.
func (s *Server) EndSession(c *gin.Context) {
	if err := s.sessions.End(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
