package aggregate

import (
	"fmt"
	"strconv"

	"retailcli/internal/cleaning"
)

// Field accessors shared across catalog entries.
var (
	sales    = func(r *cleaning.CleanedRecord) float64 { return r.Sales }
	profit   = func(r *cleaning.CleanedRecord) float64 { return r.Profit }
	quantity = func(r *cleaning.CleanedRecord) float64 { return float64(r.Quantity) }
	discount = func(r *cleaning.CleanedRecord) float64 { return r.Discount }
	margin   = func(r *cleaning.CleanedRecord) float64 { return r.ProfitMarginPct }
	delivery = func(r *cleaning.CleanedRecord) float64 { return float64(r.DeliveryDays) }

	orderID    = func(r *cleaning.CleanedRecord) string { return r.OrderID }
	customerID = func(r *cleaning.CleanedRecord) string { return r.CustomerID }

	isLoss = func(r *cleaning.CleanedRecord) bool { return r.Profit < 0 }
)

// Catalog returns the ten catalog queries in their canonical order.
func Catalog() []QuerySpec {
	return []QuerySpec{
		{
			Name:      "monthly_trend",
			GroupCols: []string{"month"},
			GroupKey: func(r *cleaning.CleanedRecord) []string {
				return []string{fmt.Sprintf("%04d-%02d", r.OrderYear, r.OrderMonth)}
			},
			Aggregates: []Aggregate{
				{Column: "total_revenue", Kind: AggSum, Value: sales, Round: 2},
				{Column: "total_profit", Kind: AggSum, Value: profit, Round: 2},
				{Column: "total_orders", Kind: AggDistinct, Key: orderID},
				{Column: "unique_customers", Kind: AggDistinct, Key: customerID},
				{Column: "avg_profit_margin", Kind: AggMean, Value: margin, Round: 2},
			},
			Sort: []SortKey{{Column: "month"}},
		},
		{
			Name:      "top_products",
			GroupCols: []string{"product_name", "category", "sub_category"},
			GroupKey: func(r *cleaning.CleanedRecord) []string {
				return []string{r.ProductName, r.Category, r.SubCategory}
			},
			Aggregates: productAggregates(),
			Sort:       []SortKey{{Column: "total_profit", Desc: true}},
			Limit:      15,
		},
		{
			Name:      "worst_products",
			GroupCols: []string{"product_name", "category", "sub_category"},
			GroupKey: func(r *cleaning.CleanedRecord) []string {
				return []string{r.ProductName, r.Category, r.SubCategory}
			},
			Aggregates: productAggregates(),
			Sort:       []SortKey{{Column: "total_profit"}},
			Limit:      15,
		},
		{
			Name:      "regional_performance",
			GroupCols: []string{"region"},
			GroupKey: func(r *cleaning.CleanedRecord) []string {
				return []string{r.Region}
			},
			Aggregates: []Aggregate{
				{Column: "unique_customers", Kind: AggDistinct, Key: customerID},
				{Column: "total_orders", Kind: AggDistinct, Key: orderID},
				{Column: "total_revenue", Kind: AggSum, Value: sales, Round: 2},
				{Column: "total_profit", Kind: AggSum, Value: profit, Round: 2},
				{Column: "avg_profit_margin", Kind: AggMean, Value: margin, Round: 2},
				{Column: "avg_delivery_days", Kind: AggMean, Value: delivery, Round: 1},
			},
			Sort: []SortKey{{Column: "total_revenue", Desc: true}},
		},
		{
			Name:      "category_analysis",
			GroupCols: []string{"category", "sub_category"},
			GroupKey: func(r *cleaning.CleanedRecord) []string {
				return []string{r.Category, r.SubCategory}
			},
			Aggregates: []Aggregate{
				{Column: "total_revenue", Kind: AggSum, Value: sales, Round: 2},
				{Column: "total_profit", Kind: AggSum, Value: profit, Round: 2},
				{Column: "avg_profit_margin", Kind: AggMean, Value: margin, Round: 2},
				{Column: "total_units", Kind: AggSumInt, Value: quantity},
				{Column: "avg_discount", Kind: AggMean, Value: discount, Round: 2},
			},
			Sort: []SortKey{
				{Column: "category"},
				{Column: "total_revenue", Desc: true},
			},
		},
		{
			Name:      "segment_analysis",
			GroupCols: []string{"segment"},
			GroupKey: func(r *cleaning.CleanedRecord) []string {
				return []string{r.Segment}
			},
			Aggregates: []Aggregate{
				{Column: "unique_customers", Kind: AggDistinct, Key: customerID},
				{Column: "total_revenue", Kind: AggSum, Value: sales, Round: 2},
				{Column: "total_profit", Kind: AggSum, Value: profit, Round: 2},
				{Column: "avg_profit_margin", Kind: AggMean, Value: margin, Round: 2},
				{Column: "revenue_per_customer", Kind: AggSumPerDistinct, Value: sales, Key: customerID, Round: 2},
			},
			Sort: []SortKey{{Column: "total_revenue", Desc: true}},
		},
		{
			Name:      "shipping_analysis",
			GroupCols: []string{"ship_mode"},
			GroupKey: func(r *cleaning.CleanedRecord) []string {
				return []string{r.ShipMode}
			},
			Aggregates: []Aggregate{
				{Column: "order_count", Kind: AggCount},
				{Column: "avg_delivery_days", Kind: AggMean, Value: delivery, Round: 1},
				{Column: "total_revenue", Kind: AggSum, Value: sales, Round: 2},
				{Column: "total_profit", Kind: AggSum, Value: profit, Round: 2},
				{Column: "avg_discount", Kind: AggMean, Value: discount, Round: 3},
			},
			Sort: []SortKey{{Column: "order_count", Desc: true}},
		},
		{
			Name:      "discount_impact",
			GroupCols: []string{"discount_bucket"},
			GroupKey: func(r *cleaning.CleanedRecord) []string {
				return []string{r.DiscountBucket}
			},
			Aggregates: []Aggregate{
				{Column: "transaction_count", Kind: AggCount},
				{Column: "total_revenue", Kind: AggSum, Value: sales, Round: 2},
				{Column: "total_profit", Kind: AggSum, Value: profit, Round: 2},
				{Column: "avg_profit_margin", Kind: AggMean, Value: margin, Round: 2},
				{Column: "loss_count", Kind: AggCountIf, Pred: isLoss},
			},
			Sort: []SortKey{{Column: "discount_bucket", Order: cleaning.BucketLabels}},
		},
		{
			Name:      "top_states",
			GroupCols: []string{"state", "region"},
			GroupKey: func(r *cleaning.CleanedRecord) []string {
				return []string{r.State, r.Region}
			},
			Aggregates: []Aggregate{
				{Column: "unique_customers", Kind: AggDistinct, Key: customerID},
				{Column: "total_revenue", Kind: AggSum, Value: sales, Round: 2},
				{Column: "total_profit", Kind: AggSum, Value: profit, Round: 2},
				{Column: "avg_profit_margin", Kind: AggMean, Value: margin, Round: 2},
			},
			Sort:  []SortKey{{Column: "total_revenue", Desc: true}},
			Limit: 10,
		},
		{
			Name:      "yoy_growth",
			GroupCols: []string{"order_year"},
			GroupKey: func(r *cleaning.CleanedRecord) []string {
				return []string{strconv.Itoa(r.OrderYear)}
			},
			Aggregates: []Aggregate{
				{Column: "revenue", Kind: AggSum, Value: sales, Round: 2},
				{Column: "profit", Kind: AggSum, Value: profit, Round: 2},
				{Column: "orders", Kind: AggDistinct, Key: orderID},
			},
			Sort:     []SortKey{{Column: "order_year"}},
			Finalize: yoyGrowth,
		},
	}
}

// QueryNames returns the catalog names in canonical order.
func QueryNames() []string {
	specs := Catalog()
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	return names
}

func productAggregates() []Aggregate {
	return []Aggregate{
		{Column: "total_sales", Kind: AggSum, Value: sales, Round: 2},
		{Column: "total_profit", Kind: AggSum, Value: profit, Round: 2},
		{Column: "units_sold", Kind: AggSumInt, Value: quantity},
		{Column: "avg_discount", Kind: AggMean, Value: discount, Round: 2},
	}
}

// yoyGrowth appends year-over-year growth columns. Growth is only defined
// against the immediately preceding year: when that year is absent from the
// data, or its value is zero, the growth cell is nil.
func yoyGrowth(t *ResultTable) {
	yearCol := columnIndex(t, "order_year")
	revenueCol := columnIndex(t, "revenue")
	profitCol := columnIndex(t, "profit")

	type yearTotals struct{ revenue, profit float64 }
	byYear := make(map[int]yearTotals, len(t.Rows))
	for _, row := range t.Rows {
		year, _ := strconv.Atoi(row[yearCol].(string))
		byYear[year] = yearTotals{
			revenue: row[revenueCol].(float64),
			profit:  row[profitCol].(float64),
		}
	}

	t.Columns = append(t.Columns, "revenue_growth_pct", "profit_growth_pct")
	for i, row := range t.Rows {
		year, _ := strconv.Atoi(row[yearCol].(string))
		prev, ok := byYear[year-1]

		var revGrowth, profitGrowth any
		if ok && prev.revenue != 0 {
			revGrowth = roundTo((row[revenueCol].(float64)-prev.revenue)/prev.revenue*100, 2)
		}
		if ok && prev.profit != 0 {
			profitGrowth = roundTo((row[profitCol].(float64)-prev.profit)/prev.profit*100, 2)
		}
		t.Rows[i] = append(row, revGrowth, profitGrowth)
	}
}

func columnIndex(t *ResultTable, name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
