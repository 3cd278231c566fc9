package cleaning

import "time"

// Transaction is one raw transaction row after type normalization.
// Immutable once built.
type Transaction struct {
	RowID        int
	OrderID      string
	OrderDate    time.Time
	ShipDate     time.Time
	ShipMode     string
	CustomerID   string
	CustomerName string
	Segment      string
	Country      string
	City         string
	State        string
	PostalCode   string
	Region       string
	ProductID    string
	Category     string
	SubCategory  string
	ProductName  string
	Sales        float64
	Quantity     int
	Discount     float64
	Profit       float64
}

// CleanedRecord is a Transaction plus the derived feature columns.
type CleanedRecord struct {
	Transaction

	// DeliveryDays is ship date minus order date in days. Negative values
	// occur when the source data has a ship date before the order date and
	// are preserved as-is.
	DeliveryDays    int
	ProfitMarginPct float64
	RevenuePerUnit  float64
	OrderYear       int
	OrderMonth      int
	OrderQuarter    int
	OrderDayOfWeek  string
	IsProfitable    bool
	DiscountBucket  string
}

// ColumnNames is the normalized column order of the cleaned table, raw
// columns first, derived columns after. The store and the quality report
// both follow this order.
var ColumnNames = []string{
	"row_id", "order_id", "order_date", "ship_date", "ship_mode",
	"customer_id", "customer_name", "segment", "country", "city", "state",
	"postal_code", "region", "product_id", "category", "sub_category",
	"product_name", "sales", "quantity", "discount", "profit",
	"delivery_days", "profit_margin_pct", "revenue_per_unit",
	"order_year", "order_month", "order_quarter", "order_day_of_week",
	"is_profitable", "discount_bucket",
}
