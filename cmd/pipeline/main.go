package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"retailcli/internal/config"
	"retailcli/internal/infrastructure"
	"retailcli/internal/pipeline"
)

func main() {
	configFile := flag.String("config", "", "path to YAML config file (optional)")
	input := flag.String("input", "", "input CSV path (overrides config)")
	out := flag.String("out", "", "output directory (overrides config)")
	trace := flag.Bool("trace", false, "emit stage traces to stdout (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *input != "" {
		cfg.Input.CSVPath = *input
	}
	if *out != "" {
		cfg.Output.Dir = *out
	}
	if *trace {
		cfg.Tracing.Enabled = true
	}

	logger := infrastructure.InitializeLogger(cfg.Logging)

	ctx := context.Background()
	tracing, err := infrastructure.InitializeTracing(ctx, cfg.Tracing.Enabled)
	if err != nil {
		logger.Error("Failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := tracing.Shutdown(ctx); err != nil {
			logger.Error("Tracing shutdown failed", "error", err)
		}
	}()

	summary, err := pipeline.NewRunner(cfg, logger, tracing.Tracer).Run(ctx)
	if err != nil {
		logger.Error("Pipeline failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("\nPipeline complete in %s (run %s)\n", summary.Elapsed.Round(time.Millisecond), summary.RunID)
	fmt.Printf("  Records processed:  %d (%d duplicates removed)\n",
		summary.RecordsProcessed, summary.DuplicatesRemoved)
	fmt.Printf("  Rows loaded:        %d -> %s\n", summary.RowsLoaded, summary.DatabasePath)
	fmt.Printf("  Queries exported:   %d -> %s\n", summary.QueriesRun, summary.OutputDir)
	if len(summary.Insights) > 0 {
		fmt.Println("\nKey insights:")
		for _, line := range summary.Insights {
			fmt.Printf("  - %s\n", line)
		}
	}
}
