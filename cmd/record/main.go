package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"credit-entry-go/internal/common"
	"credit-entry-go/internal/config"
	"credit-entry-go/internal/ledger"
	"credit-entry-go/internal/vocab"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	// Parse command line flags
	cashierFlag := flag.String("cashier", "", "Cashier recording the entry (required)")
	bankFlag := flag.String("bank", "", "Destination bank (required)")
	creditFlag := flag.String("credit", "", "Credit amount, e.g. 250.50 (required)")
	flag.Parse()

	// Validate required flags
	if *cashierFlag == "" || *bankFlag == "" || *creditFlag == "" {
		zap.L().Fatal("All flags are required: --cashier, --bank and --credit")
	}

	credit, err := decimal.NewFromString(*creditFlag)
	if err != nil {
		zap.L().Fatal("Invalid credit amount", zap.String("credit", *creditFlag), zap.Error(err))
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	// The cashier must be known; unknown banks are allowed but flagged,
	// the same permissiveness the entry form has.
	vocabulary, err := vocab.Load(cfg.Vocab.File)
	if err != nil {
		zap.L().Fatal("Failed to load vocabulary", zap.Error(err))
	}
	if !vocabulary.HasCashier(*cashierFlag) {
		zap.L().Fatal("Unknown cashier", zap.String("cashier", *cashierFlag))
	}
	if !vocabulary.HasBank(*bankFlag) {
		zap.L().Warn("Bank is not in the configured bank list, recording anyway",
			zap.String("bank", *bankFlag))
	}

	rows, err := common.InitializeStore(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to ledger store", zap.Error(err))
	}
	defer rows.Close()

	ledgerService := ledger.NewService(rows)

	entry, err := ledgerService.AppendEntry(ctx, *cashierFlag, *bankFlag, credit, time.Now())
	if err != nil {
		zap.L().Fatal("Failed to save entry", zap.Error(err))
	}

	fmt.Println()
	common.PrintHeader("ENTRY SAVED", common.DefaultWidth)
	fmt.Printf("ID:        %d\n", entry.ID)
	fmt.Printf("Timestamp: %s\n", entry.Timestamp)
	fmt.Printf("Cashier:   %s\n", entry.Cashier)
	fmt.Printf("Bank:      %s\n", entry.Bank)
	fmt.Printf("Credit:    %s\n", entry.Credit.StringFixed(2))
	common.PrintSeparator("=", common.DefaultWidth)
	fmt.Println()

	zap.L().Info("Entry recorded successfully", zap.Int64("id", entry.ID))
}
