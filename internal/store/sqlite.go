package store

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"retailcli/internal/cleaning"
	apperrors "retailcli/internal/errors"
)

const createTableSQL = `
CREATE TABLE sales (
	row_id             INTEGER,
	order_id           TEXT,
	order_date         TEXT,
	ship_date          TEXT,
	ship_mode          TEXT,
	customer_id        TEXT,
	customer_name      TEXT,
	segment            TEXT,
	country            TEXT,
	city               TEXT,
	state              TEXT,
	postal_code        TEXT,
	region             TEXT,
	product_id         TEXT,
	category           TEXT,
	sub_category       TEXT,
	product_name       TEXT,
	sales              REAL,
	quantity           INTEGER,
	discount           REAL,
	profit             REAL,
	delivery_days      INTEGER,
	profit_margin_pct  REAL,
	revenue_per_unit   REAL,
	order_year         INTEGER,
	order_month        INTEGER,
	order_quarter      INTEGER,
	order_day_of_week  TEXT,
	is_profitable      INTEGER,
	discount_bucket    TEXT
)`

const insertSQL = `
INSERT INTO sales VALUES (
	?,?,?,?,?,?,?,?,?,?,
	?,?,?,?,?,?,?,?,?,?,
	?,?,?,?,?,?,?,?,?,?
)`

// dateFormat is how dates are stored: SQLite has no date type, so they go
// in as text the analysis queries can compare and slice.
const dateFormat = "2006-01-02"

// Load writes all cleaned records into the SQLite database at dbPath,
// replacing any previous sales table. Returns the number of rows loaded.
func Load(ctx context.Context, dbPath string, records []cleaning.CleanedRecord) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return 0, apperrors.NewStorageError("failed to create database directory", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, apperrors.NewStorageError("failed to open database", err).
			WithContext("path", dbPath)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS sales`); err != nil {
		return 0, apperrors.NewStorageError("failed to drop previous sales table", err)
	}
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return 0, apperrors.NewStorageError("failed to create sales table", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperrors.NewStorageError("failed to begin load transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return 0, apperrors.NewStorageError("failed to prepare insert", err)
	}
	defer stmt.Close()

	for _, r := range records {
		profitable := 0
		if r.IsProfitable {
			profitable = 1
		}
		_, err := stmt.ExecContext(ctx,
			r.RowID, r.OrderID,
			r.OrderDate.Format(dateFormat), r.ShipDate.Format(dateFormat),
			r.ShipMode, r.CustomerID, r.CustomerName, r.Segment,
			r.Country, r.City, r.State, r.PostalCode, r.Region,
			r.ProductID, r.Category, r.SubCategory, r.ProductName,
			r.Sales, r.Quantity, r.Discount, r.Profit,
			r.DeliveryDays, r.ProfitMarginPct, r.RevenuePerUnit,
			r.OrderYear, r.OrderMonth, r.OrderQuarter, r.OrderDayOfWeek,
			profitable, r.DiscountBucket,
		)
		if err != nil {
			return 0, apperrors.NewStorageError("failed to insert sales row", err).
				WithContext("row_id", r.RowID)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, apperrors.NewStorageError("failed to commit load transaction", err)
	}

	count := int64(len(records))
	slog.Info("loaded records into database",
		slog.String("path", dbPath),
		slog.Int64("rows", count))

	return count, nil
}
