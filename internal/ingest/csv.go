package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	apperrors "retailcli/internal/errors"
)

// Table is an in-memory raw table: a header row plus data rows, all strings.
// It is immutable once ingested; cleaning produces new values from it.
type Table struct {
	Headers []string
	Rows    [][]string
}

// RowCount returns the number of data rows
func (t *Table) RowCount() int { return len(t.Rows) }

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int { return len(t.Headers) }

// ReadCSV loads the file at path into a Table. A missing or unreadable file
// is fatal and reported with the path; no partial load is returned.
func ReadCSV(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewInputError(path, err)
	}

	// Superstore exports are commonly Latin-1. Decode only when the bytes
	// are not already valid UTF-8, so UTF-8 sources pass through untouched.
	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("failed to decode %s as Latin-1", path), err)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("failed to parse CSV %s", path), err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("input file %s has no header row", path))
	}

	table := &Table{
		Headers: records[0],
		Rows:    records[1:],
	}

	slog.Info("extracted raw records",
		slog.String("path", path),
		slog.Int("rows", table.RowCount()),
		slog.Int("columns", table.ColumnCount()))

	return table, nil
}
