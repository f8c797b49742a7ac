package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"credit-entry-go/internal/common"
	"credit-entry-go/internal/config"
	"credit-entry-go/internal/ledger"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	// Parse command line flags
	idFlag := flag.Int64("id", 0, "ID of the entry to delete (required)")
	yesFlag := flag.Bool("yes", false, "Confirm the deletion (required, entries are removed permanently)")
	flag.Parse()

	if *idFlag <= 0 {
		zap.L().Fatal("A positive --id is required")
	}

	// The select-then-confirm step: refuse to delete without --yes.
	if !*yesFlag {
		fmt.Printf("You have selected entry ID %d for deletion.\n", *idFlag)
		fmt.Println("Re-run with --yes to confirm. Deleted entries cannot be recovered.")
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	rows, err := common.InitializeStore(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to ledger store", zap.Error(err))
	}
	defer rows.Close()

	ledgerService := ledger.NewService(rows)

	if err := ledgerService.DeleteEntry(ctx, *idFlag); err != nil {
		if errors.Is(err, ledger.ErrEntryNotFound) {
			fmt.Printf("Could not find entry ID %d.\n", *idFlag)
			os.Exit(1)
		}
		zap.L().Fatal("Failed to delete entry", zap.Int64("id", *idFlag), zap.Error(err))
	}

	fmt.Printf("Entry ID %d deleted successfully.\n", *idFlag)
	zap.L().Info("Entry deleted", zap.Int64("id", *idFlag))
}
