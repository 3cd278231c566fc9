package aggregate

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcli/internal/cleaning"
)

// rec builds a cleaned record with consistent derived fields for tests.
func rec(mod func(*cleaning.CleanedRecord)) cleaning.CleanedRecord {
	orderDate := time.Date(2017, 3, 10, 0, 0, 0, 0, time.UTC)
	r := cleaning.CleanedRecord{
		Transaction: cleaning.Transaction{
			RowID: 1, OrderID: "O-1", OrderDate: orderDate,
			ShipDate: orderDate.AddDate(0, 0, 3), ShipMode: "Standard Class",
			CustomerID: "C-1", Segment: "Consumer", Country: "United States",
			City: "Austin", State: "Texas", PostalCode: "73301", Region: "Central",
			ProductID: "P-1", Category: "Furniture", SubCategory: "Chairs",
			ProductName: "Basic Chair", Sales: 100, Quantity: 2, Discount: 0,
			Profit: 20,
		},
		DeliveryDays: 3, ProfitMarginPct: 20, RevenuePerUnit: 50,
		OrderYear: 2017, OrderMonth: 3, OrderQuarter: 1,
		OrderDayOfWeek: "Friday", IsProfitable: true,
		DiscountBucket: cleaning.BucketNoDiscount,
	}
	if mod != nil {
		mod(&r)
	}
	return r
}

func resultFor(t *testing.T, name string, records []cleaning.CleanedRecord) ResultTable {
	t.Helper()
	for _, spec := range Catalog() {
		if spec.Name == name {
			return runQuery(spec, records)
		}
	}
	t.Fatalf("unknown query %q", name)
	return ResultTable{}
}

func cell(t *testing.T, table ResultTable, row int, col string) any {
	t.Helper()
	i := columnIndex(&table, col)
	require.GreaterOrEqual(t, i, 0, "column %q not found in %v", col, table.Columns)
	return table.Rows[row][i]
}

func TestRun_ExecutesFullCatalog(t *testing.T) {
	results := Run([]cleaning.CleanedRecord{rec(nil)})

	require.Len(t, results, 10)
	for _, name := range QueryNames() {
		table, ok := results[name]
		require.True(t, ok, "missing result %q", name)
		assert.Equal(t, name, table.Name)
		assert.NotEmpty(t, table.Columns)
	}
}

func TestMonthlyTrend(t *testing.T) {
	records := []cleaning.CleanedRecord{
		rec(func(r *cleaning.CleanedRecord) { r.OrderMonth = 2; r.OrderID = "O-1"; r.Sales = 100 }),
		rec(func(r *cleaning.CleanedRecord) { r.OrderMonth = 2; r.OrderID = "O-1"; r.Sales = 50; r.CustomerID = "C-2" }),
		rec(func(r *cleaning.CleanedRecord) { r.OrderMonth = 1; r.OrderID = "O-2"; r.Sales = 10 }),
	}

	table := resultFor(t, "monthly_trend", records)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "2017-01", cell(t, table, 0, "month"), "months sort ascending")
	assert.Equal(t, "2017-02", cell(t, table, 1, "month"))
	assert.Equal(t, 150.0, cell(t, table, 1, "total_revenue"))
	assert.Equal(t, int64(1), cell(t, table, 1, "total_orders"), "distinct order count")
	assert.Equal(t, int64(2), cell(t, table, 1, "unique_customers"))
}

func TestTopAndWorstProducts_AreReverses(t *testing.T) {
	records := []cleaning.CleanedRecord{
		rec(func(r *cleaning.CleanedRecord) { r.ProductName = "A"; r.Profit = 30 }),
		rec(func(r *cleaning.CleanedRecord) { r.ProductName = "B"; r.Profit = -5 }),
		rec(func(r *cleaning.CleanedRecord) { r.ProductName = "C"; r.Profit = 12 }),
	}

	top := resultFor(t, "top_products", records)
	worst := resultFor(t, "worst_products", records)

	require.Len(t, top.Rows, 3)
	require.Len(t, worst.Rows, 3)
	for i := range top.Rows {
		assert.Equal(t,
			cell(t, top, i, "product_name"),
			cell(t, worst, len(worst.Rows)-1-i, "product_name"),
			"row %d should mirror", i)
	}
}

func TestProductQueries_LimitApplied(t *testing.T) {
	var records []cleaning.CleanedRecord
	for i := 0; i < 20; i++ {
		i := i
		records = append(records, rec(func(r *cleaning.CleanedRecord) {
			r.ProductName = fmt.Sprintf("P-%02d", i)
			r.Profit = float64(i)
		}))
	}

	top := resultFor(t, "top_products", records)
	require.Len(t, top.Rows, 15)
	assert.Equal(t, "P-19", cell(t, top, 0, "product_name"))
	assert.Equal(t, 19.0, cell(t, top, 0, "total_profit"))
}

func TestDiscountImpact(t *testing.T) {
	records := []cleaning.CleanedRecord{
		rec(func(r *cleaning.CleanedRecord) { r.Discount = 0; r.DiscountBucket = cleaning.BucketNoDiscount }),
		rec(func(r *cleaning.CleanedRecord) { r.Discount = 0.15; r.DiscountBucket = cleaning.Bucket11To20 }),
		rec(func(r *cleaning.CleanedRecord) {
			r.Discount = 0.25
			r.DiscountBucket = cleaning.Bucket21To30
			r.Profit = -10
			r.ProfitMarginPct = -20
		}),
		rec(func(r *cleaning.CleanedRecord) { r.Discount = 0.5; r.DiscountBucket = cleaning.BucketOver30 }),
	}

	table := resultFor(t, "discount_impact", records)
	require.Len(t, table.Rows, 4)

	// Buckets sort in categorical order, not lexically.
	assert.Equal(t, cleaning.BucketNoDiscount, cell(t, table, 0, "discount_bucket"))
	assert.Equal(t, cleaning.Bucket11To20, cell(t, table, 1, "discount_bucket"))
	assert.Equal(t, cleaning.Bucket21To30, cell(t, table, 2, "discount_bucket"))
	assert.Equal(t, cleaning.BucketOver30, cell(t, table, 3, "discount_bucket"))

	assert.Equal(t, int64(1), cell(t, table, 2, "loss_count"))
	assert.Equal(t, int64(0), cell(t, table, 0, "loss_count"))
}

func TestYoYGrowth(t *testing.T) {
	records := []cleaning.CleanedRecord{
		rec(func(r *cleaning.CleanedRecord) { r.OrderYear = 2015; r.Sales = 100; r.Profit = 10; r.OrderID = "O-15" }),
		rec(func(r *cleaning.CleanedRecord) { r.OrderYear = 2016; r.Sales = 150; r.Profit = 12; r.OrderID = "O-16" }),
		// 2017 missing entirely, then 2018: no consecutive prior year.
		rec(func(r *cleaning.CleanedRecord) { r.OrderYear = 2018; r.Sales = 80; r.Profit = 8; r.OrderID = "O-18" }),
	}

	table := resultFor(t, "yoy_growth", records)
	require.Len(t, table.Rows, 3)

	assert.Nil(t, cell(t, table, 0, "revenue_growth_pct"), "first year has no prior")
	assert.Equal(t, 50.0, cell(t, table, 1, "revenue_growth_pct"))
	assert.Equal(t, 20.0, cell(t, table, 1, "profit_growth_pct"))
	assert.Nil(t, cell(t, table, 2, "revenue_growth_pct"), "gap year breaks consecutive lookup")
}

func TestYoYGrowth_ZeroPriorYearRevenue(t *testing.T) {
	records := []cleaning.CleanedRecord{
		rec(func(r *cleaning.CleanedRecord) { r.OrderYear = 2015; r.Sales = 0; r.Profit = 0 }),
		rec(func(r *cleaning.CleanedRecord) { r.OrderYear = 2016; r.Sales = 100; r.Profit = 5 }),
	}

	var table ResultTable
	require.NotPanics(t, func() {
		table = resultFor(t, "yoy_growth", records)
	})
	assert.Nil(t, cell(t, table, 1, "revenue_growth_pct"), "zero prior revenue yields nil, not a division error")
}

func TestSegmentAnalysis_RevenuePerCustomer(t *testing.T) {
	records := []cleaning.CleanedRecord{
		rec(func(r *cleaning.CleanedRecord) { r.Segment = "Consumer"; r.CustomerID = "C-1"; r.Sales = 100 }),
		rec(func(r *cleaning.CleanedRecord) { r.Segment = "Consumer"; r.CustomerID = "C-2"; r.Sales = 50 }),
		rec(func(r *cleaning.CleanedRecord) { r.Segment = "Corporate"; r.CustomerID = "C-3"; r.Sales = 30 }),
	}

	table := resultFor(t, "segment_analysis", records)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, "Consumer", cell(t, table, 0, "segment"), "highest revenue first")
	assert.Equal(t, 75.0, cell(t, table, 0, "revenue_per_customer"))
	assert.Equal(t, int64(2), cell(t, table, 0, "unique_customers"))
}

func TestCategoryAnalysis_SortWithinCategory(t *testing.T) {
	records := []cleaning.CleanedRecord{
		rec(func(r *cleaning.CleanedRecord) { r.Category = "Furniture"; r.SubCategory = "Chairs"; r.Sales = 10 }),
		rec(func(r *cleaning.CleanedRecord) { r.Category = "Furniture"; r.SubCategory = "Tables"; r.Sales = 90 }),
		rec(func(r *cleaning.CleanedRecord) { r.Category = "Office Supplies"; r.SubCategory = "Paper"; r.Sales = 500 }),
	}

	table := resultFor(t, "category_analysis", records)
	require.Len(t, table.Rows, 3)

	// Category ascending first, then revenue descending inside it.
	assert.Equal(t, "Tables", cell(t, table, 0, "sub_category"))
	assert.Equal(t, "Chairs", cell(t, table, 1, "sub_category"))
	assert.Equal(t, "Paper", cell(t, table, 2, "sub_category"))
}

func TestShippingAnalysis_Rounding(t *testing.T) {
	records := []cleaning.CleanedRecord{
		rec(func(r *cleaning.CleanedRecord) { r.ShipMode = "First Class"; r.DeliveryDays = 2; r.Discount = 0.1234 }),
		rec(func(r *cleaning.CleanedRecord) { r.ShipMode = "First Class"; r.DeliveryDays = 3; r.Discount = 0.2 }),
	}

	table := resultFor(t, "shipping_analysis", records)
	require.Len(t, table.Rows, 1)

	assert.Equal(t, int64(2), cell(t, table, 0, "order_count"))
	assert.Equal(t, 2.5, cell(t, table, 0, "avg_delivery_days"))
	assert.Equal(t, 0.162, cell(t, table, 0, "avg_discount"), "shipping discount keeps three decimals")
}

func TestTopStates_Limit(t *testing.T) {
	var records []cleaning.CleanedRecord
	for i := 0; i < 12; i++ {
		i := i
		records = append(records, rec(func(r *cleaning.CleanedRecord) {
			r.State = fmt.Sprintf("State-%02d", i)
			r.Sales = float64(100 + i)
		}))
	}

	table := resultFor(t, "top_states", records)
	require.Len(t, table.Rows, 10)
	assert.Equal(t, "State-11", cell(t, table, 0, "state"))
}

func TestCatalog_NoDivisionErrorsOnDegenerateData(t *testing.T) {
	// Zero sales, zero quantity, single year: every ratio in the catalog
	// must fall back rather than fault.
	records := []cleaning.CleanedRecord{
		rec(func(r *cleaning.CleanedRecord) {
			r.Sales = 0
			r.Quantity = 0
			r.Profit = 0
			r.ProfitMarginPct = 0
			r.RevenuePerUnit = 0
		}),
	}

	require.NotPanics(t, func() {
		results := Run(records)
		assert.Len(t, results, 10)
	})
}

func TestRun_DoesNotMutateRecords(t *testing.T) {
	records := []cleaning.CleanedRecord{rec(nil), rec(func(r *cleaning.CleanedRecord) { r.OrderID = "O-2" })}
	before := make([]cleaning.CleanedRecord, len(records))
	copy(before, records)

	_ = Run(records)

	assert.Equal(t, before, records)
}
