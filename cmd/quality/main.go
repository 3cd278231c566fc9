package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"retailcli/internal/cleaning"
	"retailcli/internal/config"
	"retailcli/internal/infrastructure"
	"retailcli/internal/ingest"
)

// quality runs extract and clean only, then prints the data quality report.
// Nothing is written to disk; use it to vet a CSV before a full pipeline run.
func main() {
	configFile := flag.String("config", "", "path to YAML config file (optional)")
	input := flag.String("input", "", "input CSV path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *input != "" {
		cfg.Input.CSVPath = *input
	}

	logger := infrastructure.InitializeLogger(cfg.Logging)

	raw, err := ingest.ReadCSV(cfg.Input.CSVPath)
	if err != nil {
		logger.Error("Failed to read input", "error", err)
		os.Exit(1)
	}

	records, stats, err := cleaning.NewCleaner(logger).Clean(raw)
	if err != nil {
		logger.Error("Cleaning failed", "error", err)
		os.Exit(1)
	}
	logger.Info("cleaning complete",
		"rows_in", stats.RowsIn,
		"rows_out", stats.RowsOut,
		"duplicates_removed", stats.DuplicatesRemoved)

	fmt.Println(cleaning.Validate(records).FormatText())
}
