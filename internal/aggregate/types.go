package aggregate

import "retailcli/internal/cleaning"

// ResultTable is a named query result with ordered columns. Cells are
// string, int64, float64, or nil (absent value, e.g. growth with no prior
// year). A table is produced once per run and overwritten on re-run.
type ResultTable struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// AggKind selects how an aggregate column accumulates.
type AggKind int

const (
	// AggSum sums Value over the group.
	AggSum AggKind = iota
	// AggSumInt sums Value and emits an integer cell.
	AggSumInt
	// AggMean averages Value over the group rows.
	AggMean
	// AggCount counts rows in the group.
	AggCount
	// AggDistinct counts distinct Key values in the group.
	AggDistinct
	// AggCountIf counts rows matching Pred.
	AggCountIf
	// AggSumPerDistinct divides the Value sum by the distinct Key count,
	// 0.0 when the group has no distinct keys.
	AggSumPerDistinct
)

// Aggregate describes one computed column.
type Aggregate struct {
	Column string
	Kind   AggKind
	Value  func(*cleaning.CleanedRecord) float64
	Key    func(*cleaning.CleanedRecord) string
	Pred   func(*cleaning.CleanedRecord) bool
	Round  int
}

// SortKey orders result rows by a named column. Order, when set, imposes an
// explicit categorical order instead of natural comparison.
type SortKey struct {
	Column string
	Desc   bool
	Order  []string
}

// QuerySpec is one declarative catalog entry.
type QuerySpec struct {
	Name       string
	GroupCols  []string
	GroupKey   func(*cleaning.CleanedRecord) []string
	Aggregates []Aggregate
	Sort       []SortKey
	Limit      int
	Finalize   func(*ResultTable)
}
