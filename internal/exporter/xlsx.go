package exporter

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"retailcli/internal/aggregate"
	"retailcli/internal/config"
	apperrors "retailcli/internal/errors"
)

// WorkbookWriter assembles all query results into a single XLSX workbook,
// one sheet per query, for consumers who want the whole analysis in one
// artifact.
type WorkbookWriter struct {
	paths config.Paths
}

// NewWorkbookWriter creates a workbook writer for the given output layout
func NewWorkbookWriter(paths config.Paths) *WorkbookWriter {
	return &WorkbookWriter{paths: paths}
}

// Write builds the workbook with one sheet per result table, in catalog
// order, and saves it to the configured workbook path.
func (w *WorkbookWriter) Write(results map[string]aggregate.ResultTable, order []string) error {
	if err := w.paths.EnsureOutputDir(); err != nil {
		return apperrors.NewExportError("failed to create output directory", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for _, name := range order {
		table, ok := results[name]
		if !ok {
			return apperrors.NewExportError(
				fmt.Sprintf("missing result table %q", name), nil)
		}
		if _, err := f.NewSheet(name); err != nil {
			return apperrors.NewExportError(
				fmt.Sprintf("failed to create sheet %s", name), err)
		}
		if err := writeSheet(f, name, table); err != nil {
			return err
		}
	}

	// Drop the default sheet so the workbook only carries query results.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return apperrors.NewExportError("failed to remove default sheet", err)
	}

	if err := f.SaveAs(w.paths.WorkbookPath); err != nil {
		return apperrors.NewExportError(
			fmt.Sprintf("failed to save workbook %s", w.paths.WorkbookPath), err)
	}

	slog.Info("wrote analysis workbook",
		slog.String("path", w.paths.WorkbookPath),
		slog.Int("sheets", len(order)))

	return nil
}

func writeSheet(f *excelize.File, sheet string, table aggregate.ResultTable) error {
	for col, name := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return apperrors.NewExportError("bad header cell coordinates", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return apperrors.NewExportError("failed to write header cell", err)
		}
	}

	for rowIdx, row := range table.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return apperrors.NewExportError("bad data cell coordinates", err)
			}
			if value == nil {
				continue
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return apperrors.NewExportError("failed to write data cell", err)
			}
		}
	}

	return nil
}
