package cleaning

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// QualityReport describes the cleaned table without referencing it. It is
// produced by a read-only pass; callers keep their records untouched.
type QualityReport struct {
	TotalRecords    int
	TotalColumns    int
	DateFrom        time.Time
	DateTo          time.Time
	UniqueOrders    int
	UniqueCustomers int
	UniqueProducts  int
	TotalRevenue    float64
	TotalProfit     float64
	AvgProfitMargin float64

	// NullCounts holds, per column, the number of empty text values. Date
	// and numeric columns cannot be null after cleaning, so only text
	// columns appear, and only when a count is nonzero.
	NullCounts map[string]int

	NegativeProfitCount int
	NegativeProfitPct   float64
}

// Validate inspects cleaned records and produces a quality report. It is a
// pure function: the records are read-only and returned state lives entirely
// in the report.
func Validate(records []CleanedRecord) QualityReport {
	report := QualityReport{
		TotalRecords: len(records),
		TotalColumns: len(ColumnNames),
		NullCounts:   make(map[string]int),
	}
	if len(records) == 0 {
		return report
	}

	orders := make(map[string]struct{})
	customers := make(map[string]struct{})
	products := make(map[string]struct{})

	var marginSum float64
	report.DateFrom = records[0].OrderDate
	report.DateTo = records[0].OrderDate

	for _, r := range records {
		if r.OrderDate.Before(report.DateFrom) {
			report.DateFrom = r.OrderDate
		}
		if r.OrderDate.After(report.DateTo) {
			report.DateTo = r.OrderDate
		}

		orders[r.OrderID] = struct{}{}
		customers[r.CustomerID] = struct{}{}
		products[r.ProductID] = struct{}{}

		report.TotalRevenue += r.Sales
		report.TotalProfit += r.Profit
		marginSum += r.ProfitMarginPct

		if r.Profit < 0 {
			report.NegativeProfitCount++
		}

		countEmpty(report.NullCounts, map[string]string{
			"order_id":      r.OrderID,
			"ship_mode":     r.ShipMode,
			"customer_id":   r.CustomerID,
			"customer_name": r.CustomerName,
			"segment":       r.Segment,
			"country":       r.Country,
			"city":          r.City,
			"state":         r.State,
			"postal_code":   r.PostalCode,
			"region":        r.Region,
			"product_id":    r.ProductID,
			"category":      r.Category,
			"sub_category":  r.SubCategory,
			"product_name":  r.ProductName,
		})
	}

	report.UniqueOrders = len(orders)
	report.UniqueCustomers = len(customers)
	report.UniqueProducts = len(products)
	report.AvgProfitMargin = round2(marginSum / float64(len(records)))
	report.NegativeProfitPct = round2(float64(report.NegativeProfitCount) / float64(len(records)) * 100)

	return report
}

func countEmpty(counts map[string]int, fields map[string]string) {
	for col, v := range fields {
		if v == "" {
			counts[col]++
		}
	}
}

// FormatText renders the report as a human-readable block for the CLI.
func (r QualityReport) FormatText() string {
	var b strings.Builder
	line := strings.Repeat("=", 55)

	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "        DATA QUALITY REPORT")
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "  Total Records     : %d\n", r.TotalRecords)
	fmt.Fprintf(&b, "  Total Columns     : %d\n", r.TotalColumns)
	if !r.DateFrom.IsZero() {
		fmt.Fprintf(&b, "  Date Range        : %s to %s\n",
			r.DateFrom.Format("2006-01-02"), r.DateTo.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "  Unique Orders     : %d\n", r.UniqueOrders)
	fmt.Fprintf(&b, "  Unique Customers  : %d\n", r.UniqueCustomers)
	fmt.Fprintf(&b, "  Unique Products   : %d\n", r.UniqueProducts)
	fmt.Fprintf(&b, "  Total Revenue     : $%.2f\n", r.TotalRevenue)
	fmt.Fprintf(&b, "  Total Profit      : $%.2f\n", r.TotalProfit)
	fmt.Fprintf(&b, "  Avg Profit Margin : %.2f%%\n", r.AvgProfitMargin)

	if len(r.NullCounts) > 0 {
		fmt.Fprintln(&b, "  Columns with missing values:")
		cols := make([]string, 0, len(r.NullCounts))
		for col := range r.NullCounts {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		for _, col := range cols {
			fmt.Fprintf(&b, "      %s: %d\n", col, r.NullCounts[col])
		}
	} else {
		fmt.Fprintln(&b, "  No missing values found.")
	}

	fmt.Fprintf(&b, "  Loss-making transactions: %d (%.1f%%)\n",
		r.NegativeProfitCount, r.NegativeProfitPct)
	fmt.Fprintln(&b, line)

	return b.String()
}
