package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"credit-entry-go/internal/api"
	"credit-entry-go/internal/common"
	"credit-entry-go/internal/config"
	"credit-entry-go/internal/ledger"
	"credit-entry-go/internal/session"
	"credit-entry-go/internal/vocab"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	logger.Info("Starting credit entry server")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Load the cashier/bank vocabulary
	vocabulary, err := vocab.Load(cfg.Vocab.File)
	if err != nil {
		logger.Fatal("Failed to load vocabulary", zap.Error(err))
	}
	logger.Info("Vocabulary loaded",
		zap.Int("cashiers", len(vocabulary.Cashiers)),
		zap.Int("banks", len(vocabulary.Banks)))

	// Connect to the row store; a connect failure is fatal to the session.
	rows, err := common.InitializeStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to connect to ledger store", zap.Error(err))
	}
	defer rows.Close()

	ledgerService := ledger.NewService(rows)
	sessions := session.NewManager(vocabulary)
	server := api.NewServer(ledgerService, sessions, rows)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.Router(),
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.Server.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
