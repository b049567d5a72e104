package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"affrecon/internal/config"
	"affrecon/internal/exporter"
	"affrecon/internal/services"
)

func main() {
	var (
		campaignPath = flag.String("campaign", "", "path to the campaign summary report (CSV or XLSX)")
		ledgerPath   = flag.String("ledger", "", "path to the per-user value ledger report (CSV or XLSX)")
		user         = flag.String("user", "", "username to inspect after loading")
		observed     = flag.String("observed", "", "externally observed commission for the inspected user")
		rate         = flag.Float64("rate", -1, "manual commission rate fallback as a fraction in [0,1]")
		out          = flag.String("out", "", "write the headline metrics to this CSV file")
	)
	flag.Parse()

	if *campaignPath == "" && *ledgerPath == "" {
		fmt.Fprintln(os.Stderr, "at least one of -campaign or -ledger is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*campaignPath, *ledgerPath, *user, *observed, *rate, *out); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(campaignPath, ledgerPath, user, observed string, rate float64, out string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Keep service logs off stdout so the table stays clean
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	svc := services.NewReconciliationService(cfg, logger)

	if rate >= 0 {
		if err := svc.SetManualRate(rate); err != nil {
			return err
		}
	}

	if err := svc.LoadFiles(ctx, campaignPath, ledgerPath); err != nil {
		return err
	}

	metrics := svc.HeadlineMetrics(ctx)
	for _, m := range metrics {
		fmt.Printf("%-32s %s\n", m.Label, m.Value)
	}

	if user != "" {
		var observedValue any
		if observed != "" {
			observedValue = observed
		}

		result, err := svc.InspectUser(ctx, user, observedValue)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("%-32s %s\n", "Inspected User", result.User.Username)
		fmt.Printf("%-32s %d\n", "Ledger Entries", result.User.Entries)
		fmt.Printf("%-32s %.2f\n", "Total Value (USD)", result.User.TotalValue)
		fmt.Printf("%-32s %.2f\n", "Estimated Commission (USD)", result.EstimatedCommission)
		if result.ObservedCommission != nil {
			fmt.Printf("%-32s %.2f\n", "Observed Commission (USD)", *result.ObservedCommission)
			fmt.Printf("%-32s %.2f\n", "Variance (USD)", *result.Variance)
		}
	}

	if out != "" {
		writer := exporter.NewCSVWriter()
		if err := writer.WriteHeadlineFile(out, metrics); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "headline written to", out)
	}

	return nil
}
