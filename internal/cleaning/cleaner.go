package cleaning

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	apperrors "retailcli/internal/errors"
	"retailcli/internal/ingest"
)

// requiredColumns are the normalized source columns the cleaner depends on.
var requiredColumns = []string{
	"row_id", "order_id", "order_date", "ship_date", "ship_mode",
	"customer_id", "customer_name", "segment", "country", "city", "state",
	"postal_code", "region", "product_id", "category", "sub_category",
	"product_name", "sales", "quantity", "discount", "profit",
}

// Stats summarizes what a cleaning pass did.
type Stats struct {
	RowsIn            int
	RowsOut           int
	Columns           int
	DuplicatesRemoved int
}

// Cleaner runs the cleaning and feature-engineering steps.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a cleaner. A nil logger falls back to slog.Default.
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger}
}

// Clean transforms a raw table into cleaned, feature-enriched records.
// Steps run in order, each fully materialized: duplicate removal, column
// normalization, date parsing, missing-value handling, type normalization,
// feature derivation. Any unparseable date or numeric value aborts the run.
func (c *Cleaner) Clean(raw *ingest.Table) ([]CleanedRecord, Stats, error) {
	stats := Stats{RowsIn: raw.RowCount(), Columns: raw.ColumnCount()}

	rows := dropExactDuplicates(raw.Rows)
	stats.DuplicatesRemoved = stats.RowsIn - len(rows)
	if stats.DuplicatesRemoved > 0 {
		c.logger.Info("removed duplicate rows",
			slog.Int("count", stats.DuplicatesRemoved))
	}

	headers := NormalizeHeaders(raw.Headers)
	index, err := columnIndex(headers)
	if err != nil {
		return nil, stats, err
	}

	records := make([]CleanedRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := c.buildRecord(index, row)
		if err != nil {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) {
				return nil, stats, appErr.WithContext("row", i+1)
			}
			return nil, stats, err
		}
		records = append(records, rec)
	}

	stats.RowsOut = len(records)
	c.logger.Info("cleaning complete",
		slog.Int("rows", stats.RowsOut),
		slog.Int("columns", len(ColumnNames)))

	return records, stats, nil
}

// dropExactDuplicates removes rows that match a previous row in every
// column, preserving first occurrence order. Near-duplicates are kept.
func dropExactDuplicates(rows [][]string) [][]string {
	seen := make(map[string]struct{}, len(rows))
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		key := strings.Join(row, "\x1f")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out
}

// columnIndex maps normalized column names to positions, rejecting tables
// missing any required column.
func columnIndex(headers []string) (map[string]int, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[h] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("input is missing required column %q", col))
		}
	}
	return index, nil
}

// buildRecord parses one raw row into a CleanedRecord.
func (c *Cleaner) buildRecord(index map[string]int, row []string) (CleanedRecord, error) {
	cell := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	orderDate, err := ParseDate(cell("order_date"))
	if err != nil {
		return CleanedRecord{}, apperrors.NewParsingError("bad order_date", err)
	}
	shipDate, err := ParseDate(cell("ship_date"))
	if err != nil {
		return CleanedRecord{}, apperrors.NewParsingError("bad ship_date", err)
	}

	rowID, err := parseIntField("row_id", cell("row_id"))
	if err != nil {
		return CleanedRecord{}, err
	}
	sales, err := parseFloatField("sales", cell("sales"))
	if err != nil {
		return CleanedRecord{}, err
	}
	quantity, err := parseIntField("quantity", cell("quantity"))
	if err != nil {
		return CleanedRecord{}, err
	}
	discount, err := parseFloatField("discount", cell("discount"))
	if err != nil {
		return CleanedRecord{}, err
	}
	profit, err := parseFloatField("profit", cell("profit"))
	if err != nil {
		return CleanedRecord{}, err
	}

	// Postal code is the only back-filled field: missing becomes 0, then the
	// column is carried as a string.
	postal := cell("postal_code")
	if postal == "" {
		postal = "0"
	}

	tx := Transaction{
		RowID:        rowID,
		OrderID:      cell("order_id"),
		OrderDate:    orderDate,
		ShipDate:     shipDate,
		ShipMode:     cell("ship_mode"),
		CustomerID:   cell("customer_id"),
		CustomerName: cell("customer_name"),
		Segment:      cell("segment"),
		Country:      cell("country"),
		City:         cell("city"),
		State:        cell("state"),
		PostalCode:   postal,
		Region:       cell("region"),
		ProductID:    cell("product_id"),
		Category:     cell("category"),
		SubCategory:  cell("sub_category"),
		ProductName:  cell("product_name"),
		Sales:        sales,
		Quantity:     quantity,
		Discount:     discount,
		Profit:       profit,
	}

	return derive(tx), nil
}

// derive computes the engineered feature columns from a typed transaction.
func derive(tx Transaction) CleanedRecord {
	rec := CleanedRecord{Transaction: tx}

	rec.DeliveryDays = int(tx.ShipDate.Sub(tx.OrderDate).Hours() / 24)

	if tx.Sales != 0 {
		rec.ProfitMarginPct = round2(tx.Profit / tx.Sales * 100)
	}
	if tx.Quantity != 0 {
		rec.RevenuePerUnit = round2(tx.Sales / float64(tx.Quantity))
	}

	rec.OrderYear = tx.OrderDate.Year()
	rec.OrderMonth = int(tx.OrderDate.Month())
	rec.OrderQuarter = (rec.OrderMonth + 2) / 3
	rec.OrderDayOfWeek = tx.OrderDate.Weekday().String()
	rec.IsProfitable = tx.Profit > 0
	rec.DiscountBucket = DiscountBucket(tx.Discount)

	return rec
}

func parseFloatField(col, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, apperrors.NewParsingError(
			fmt.Sprintf("non-numeric value in column %q", col), err).
			WithContext("value", value)
	}
	return f, nil
}

func parseIntField(col, value string) (int, error) {
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}
	// Some exports carry integer columns as floats ("2.0").
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, apperrors.NewParsingError(
			fmt.Sprintf("non-integer value in column %q", col), err).
			WithContext("value", value)
	}
	return int(f), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
