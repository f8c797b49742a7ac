package main

import (
	"context"
	"flag"
	"fmt"

	"credit-entry-go/internal/common"
	"credit-entry-go/internal/config"
	"credit-entry-go/internal/ledger"
	"credit-entry-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ledgerStats struct {
	entryCount int
	total      decimal.Decimal
	perBank    map[string]decimal.Decimal
	perCashier map[string]decimal.Decimal
}

func collectStats(entries []models.Entry) ledgerStats {
	stats := ledgerStats{
		total:      decimal.Zero,
		perBank:    make(map[string]decimal.Decimal),
		perCashier: make(map[string]decimal.Decimal),
	}
	for _, e := range entries {
		stats.entryCount++
		stats.total = stats.total.Add(e.Credit)
		stats.perBank[e.Bank] = stats.perBank[e.Bank].Add(e.Credit)
		stats.perCashier[e.Cashier] = stats.perCashier[e.Cashier].Add(e.Credit)
	}
	return stats
}

func printEntry(e models.Entry, isLast bool) {
	fmt.Printf("%s #%-6d %s  %-12s %-20s %15s\n",
		common.BoxPrefix(isLast),
		e.ID,
		e.Timestamp,
		e.Cashier,
		e.Bank,
		e.Credit.StringFixed(2))
}

func printSubtotals(title string, totals map[string]decimal.Decimal) {
	fmt.Printf("\n%s\n", title)
	for name, total := range totals {
		fmt.Printf("  %-22s %15s\n", name, total.StringFixed(2))
	}
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	// Parse command line flags
	searchFlag := flag.String("search", "", "Filter entries by a case-insensitive substring (optional)")
	cashierFlag := flag.String("cashier", "", "Filter entries by cashier name (optional)")
	flag.Parse()

	logger.Info("Starting ledger report")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	rows, err := common.InitializeStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to connect to ledger store", zap.Error(err))
	}
	defer rows.Close()

	ledgerService := ledger.NewService(rows)

	entries, err := ledgerService.ListEntries(ctx)
	if err != nil {
		logger.Fatal("Failed to read ledger", zap.Error(err))
	}

	entries = ledger.Filter(entries, *searchFlag)
	if *cashierFlag != "" {
		byCashier := entries[:0]
		for _, e := range entries {
			if e.Cashier == *cashierFlag {
				byCashier = append(byCashier, e)
			}
		}
		entries = byCashier
	}
	ledger.SortByIDDescending(entries)

	// Print header
	common.PrintHeader("CREDIT ENTRY LEDGER", common.DefaultWidth)

	if len(entries) == 0 {
		fmt.Println("No entries found.")
	}
	for i, e := range entries {
		printEntry(e, i == len(entries)-1)
	}

	stats := collectStats(entries)
	printSubtotals("Per bank:", stats.perBank)
	printSubtotals("Per cashier:", stats.perCashier)

	// Print footer summary
	summary := fmt.Sprintf("SUMMARY: %d entries, total credit %s",
		stats.entryCount, stats.total.StringFixed(2))
	common.PrintFooter(summary, common.DefaultWidth)

	logger.Info("Ledger report completed",
		zap.Int("entries", stats.entryCount),
		zap.String("total", stats.total.String()))
}
