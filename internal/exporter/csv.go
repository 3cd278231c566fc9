package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"retailcli/internal/aggregate"
	"retailcli/internal/config"
	apperrors "retailcli/internal/errors"
)

// CSVWriter exports result tables as delimited files
type CSVWriter struct {
	paths config.Paths
}

// NewCSVWriter creates a new CSV writer for the given output layout
func NewCSVWriter(paths config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteResultTable writes one query result to <output dir>/<name>.csv,
// truncating any previous run's file.
func (w *CSVWriter) WriteResultTable(table aggregate.ResultTable) error {
	if err := w.paths.EnsureOutputDir(); err != nil {
		return apperrors.NewExportError("failed to create output directory", err)
	}

	path := w.paths.QueryCSVPath(table.Name)
	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewExportError(
			fmt.Sprintf("failed to create %s", path), err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(table.Columns); err != nil {
		return apperrors.NewExportError("failed to write header row", err)
	}

	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, cell := range row {
			record[i] = formatCell(cell)
		}
		if err := writer.Write(record); err != nil {
			return apperrors.NewExportError("failed to write data row", err)
		}
	}
	if err := writer.Error(); err != nil {
		return apperrors.NewExportError("failed to flush CSV", err)
	}

	slog.Info("wrote query result",
		slog.String("query", table.Name),
		slog.String("path", path),
		slog.Int("rows", len(table.Rows)))

	return nil
}

// WriteAll exports every result table in catalog order.
func (w *CSVWriter) WriteAll(results map[string]aggregate.ResultTable, order []string) error {
	for _, name := range order {
		table, ok := results[name]
		if !ok {
			return apperrors.NewExportError(
				fmt.Sprintf("missing result table %q", name), nil)
		}
		if err := w.WriteResultTable(table); err != nil {
			return err
		}
	}
	return nil
}
