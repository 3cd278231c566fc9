package pipeline

import (
	"fmt"

	"retailcli/internal/aggregate"
	"retailcli/internal/cleaning"
)

// Insights derives headline findings from the aggregate results. Missing
// tables or empty rows simply produce fewer lines; the run never fails here.
func Insights(results map[string]aggregate.ResultTable) []string {
	var out []string

	if t, ok := results["regional_performance"]; ok && len(t.Rows) > 0 {
		region, _ := cellString(t, 0, "region")
		if revenue, ok := cellFloat(t, 0, "total_revenue"); ok {
			out = append(out, fmt.Sprintf("%s is the top region with $%.2f in revenue", region, revenue))
		}
	}

	if t, ok := results["category_analysis"]; ok {
		if row, profit, ok := minFloatRow(t, "total_profit"); ok && profit < 0 {
			sub, _ := cellString(t, row, "sub_category")
			out = append(out, fmt.Sprintf("%s is the biggest loss-maker at $%.2f", sub, profit))
		}
	}

	if t, ok := results["yoy_growth"]; ok && len(t.Rows) > 0 {
		last := len(t.Rows) - 1
		year, _ := cellString(t, last, "order_year")
		if growth, ok := cellFloat(t, last, "revenue_growth_pct"); ok {
			out = append(out, fmt.Sprintf("revenue grew %.2f%% in %s over the prior year", growth, year))
		}
	}

	if t, ok := results["discount_impact"]; ok {
		base, baseOK := bucketMargin(t, cleaning.BucketNoDiscount)
		deep, deepOK := bucketMargin(t, cleaning.BucketOver30)
		if baseOK && deepOK {
			out = append(out, fmt.Sprintf("avg profit margin falls from %.2f%% with no discount to %.2f%% at 30%%+ discounts", base, deep))
		}
	}

	return out
}

func columnIndex(t aggregate.ResultTable, name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func cellString(t aggregate.ResultTable, row int, col string) (string, bool) {
	i := columnIndex(t, col)
	if i < 0 || row >= len(t.Rows) {
		return "", false
	}
	s, ok := t.Rows[row][i].(string)
	return s, ok
}

func cellFloat(t aggregate.ResultTable, row int, col string) (float64, bool) {
	i := columnIndex(t, col)
	if i < 0 || row >= len(t.Rows) {
		return 0, false
	}
	switch v := t.Rows[row][i].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func minFloatRow(t aggregate.ResultTable, col string) (int, float64, bool) {
	best := -1
	var min float64
	for row := range t.Rows {
		v, ok := cellFloat(t, row, col)
		if !ok {
			continue
		}
		if best < 0 || v < min {
			best, min = row, v
		}
	}
	return best, min, best >= 0
}

func bucketMargin(t aggregate.ResultTable, bucket string) (float64, bool) {
	for row := range t.Rows {
		if b, ok := cellString(t, row, "discount_bucket"); ok && b == bucket {
			return cellFloat(t, row, "avg_profit_margin")
		}
	}
	return 0, false
}
