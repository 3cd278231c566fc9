package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcli/internal/cleaning"
)

func sampleRecords() []cleaning.CleanedRecord {
	orderDate := time.Date(2017, 5, 2, 0, 0, 0, 0, time.UTC)
	return []cleaning.CleanedRecord{
		{
			Transaction: cleaning.Transaction{
				RowID: 1, OrderID: "O-1", OrderDate: orderDate,
				ShipDate: orderDate.AddDate(0, 0, 4), ShipMode: "Standard Class",
				CustomerID: "C-1", CustomerName: "Muñoz", Segment: "Consumer",
				Country: "United States", City: "Austin", State: "Texas",
				PostalCode: "73301", Region: "Central", ProductID: "P-1",
				Category: "Furniture", SubCategory: "Chairs",
				ProductName: "Basic Chair", Sales: 100, Quantity: 2,
				Discount: 0.1, Profit: 20,
			},
			DeliveryDays: 4, ProfitMarginPct: 20, RevenuePerUnit: 50,
			OrderYear: 2017, OrderMonth: 5, OrderQuarter: 2,
			OrderDayOfWeek: "Tuesday", IsProfitable: true,
			DiscountBucket: cleaning.Bucket1To10,
		},
		{
			Transaction: cleaning.Transaction{
				RowID: 2, OrderID: "O-2", OrderDate: orderDate,
				ShipDate: orderDate, Sales: 0, Quantity: 1,
			},
			OrderYear: 2017, OrderMonth: 5, OrderQuarter: 2,
			OrderDayOfWeek: "Tuesday",
			DiscountBucket: cleaning.BucketNoDiscount,
		},
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "retail_sales.db")

	count, err := Load(context.Background(), dbPath, sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sales`).Scan(&rows))
	assert.Equal(t, 2, rows)

	var orderDate, bucket, name string
	var profitable int
	require.NoError(t, db.QueryRow(
		`SELECT order_date, discount_bucket, customer_name, is_profitable FROM sales WHERE row_id = 1`).
		Scan(&orderDate, &bucket, &name, &profitable))
	assert.Equal(t, "2017-05-02", orderDate, "dates stored as text")
	assert.Equal(t, cleaning.Bucket1To10, bucket, "categoricals stored as text")
	assert.Equal(t, "Muñoz", name)
	assert.Equal(t, 1, profitable)
}

func TestLoad_ReplacesPreviousRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "retail_sales.db")
	ctx := context.Background()

	_, err := Load(ctx, dbPath, sampleRecords())
	require.NoError(t, err)

	// Second run with one record must fully overwrite, not append.
	_, err = Load(ctx, dbPath, sampleRecords()[:1])
	require.NoError(t, err)

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sales`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestLoad_EmptyInput(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "retail_sales.db")

	count, err := Load(context.Background(), dbPath, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}
