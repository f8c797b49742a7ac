package api

import (
	"net/http"

	"credit-entry-go/internal/ledger"
	"credit-entry-go/internal/session"
	"credit-entry-go/internal/store"

	"github.com/gin-gonic/gin"
)

// Server is the HTTP presentation adapter over the ledger service. It maps
// the data-entry user intents (select cashier, select bank, submit amount,
// search, confirm delete, log out) onto REST routes. After every mutating
// call the client is expected to re-fetch /v1/entries and re-render.
type Server struct {
	ledger   *ledger.Service
	sessions *session.Manager
	rows     store.RowStore
}

func NewServer(ledgerService *ledger.Service, sessions *session.Manager, rows store.RowStore) *Server {
	return &Server{
		ledger:   ledgerService,
		sessions: sessions,
		rows:     rows,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.HealthCheck)

	v1 := r.Group("/v1")
	{
		v1.POST("/sessions", s.StartSession)
		v1.GET("/sessions/:id", s.GetSession)
		v1.PUT("/sessions/:id/bank", s.SelectBank)
		v1.DELETE("/sessions/:id", s.EndSession)

		v1.GET("/entries", s.ListEntries)
		v1.POST("/entries", s.AppendEntry)
		v1.DELETE("/entries/:id", s.DeleteEntry)
	}

	return r
}

// HealthCheck verifies the backing store is reachable.
func (s *Server) HealthCheck(c *gin.Context) {
	if _, err := s.rows.FetchAllRows(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
