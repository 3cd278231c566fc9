package aggregate

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"retailcli/internal/cleaning"
)

// Run executes the full catalog against the cleaned records and returns the
// result tables keyed by query name. The records are read-only; every table
// is built fresh.
func Run(records []cleaning.CleanedRecord) map[string]ResultTable {
	results := make(map[string]ResultTable, len(QueryNames()))
	for _, spec := range Catalog() {
		table := runQuery(spec, records)
		results[spec.Name] = table
		slog.Info("aggregation query complete",
			slog.String("query", spec.Name),
			slog.Int("rows", len(table.Rows)))
	}
	return results
}

// group accumulates one grouping key's aggregate state.
type group struct {
	keyParts []string
	rows     int
	sums     []float64
	distinct []map[string]struct{}
	matched  []int
}

func runQuery(spec QuerySpec, records []cleaning.CleanedRecord) ResultTable {
	groups := make(map[string]*group)
	order := make([]string, 0)

	for i := range records {
		r := &records[i]
		parts := spec.GroupKey(r)
		key := strings.Join(parts, "\x1f")

		g, ok := groups[key]
		if !ok {
			g = &group{
				keyParts: parts,
				sums:     make([]float64, len(spec.Aggregates)),
				distinct: make([]map[string]struct{}, len(spec.Aggregates)),
				matched:  make([]int, len(spec.Aggregates)),
			}
			for j, agg := range spec.Aggregates {
				if agg.Kind == AggDistinct || agg.Kind == AggSumPerDistinct {
					g.distinct[j] = make(map[string]struct{})
				}
			}
			groups[key] = g
			order = append(order, key)
		}

		g.rows++
		for j, agg := range spec.Aggregates {
			switch agg.Kind {
			case AggSum, AggSumInt, AggMean:
				g.sums[j] += agg.Value(r)
			case AggDistinct:
				g.distinct[j][agg.Key(r)] = struct{}{}
			case AggCountIf:
				if agg.Pred(r) {
					g.matched[j]++
				}
			case AggSumPerDistinct:
				g.sums[j] += agg.Value(r)
				g.distinct[j][agg.Key(r)] = struct{}{}
			}
		}
	}

	table := ResultTable{
		Name:    spec.Name,
		Columns: append(append([]string{}, spec.GroupCols...), aggregateColumns(spec)...),
	}

	for _, key := range order {
		g := groups[key]
		row := make([]any, 0, len(table.Columns))
		for _, part := range g.keyParts {
			row = append(row, part)
		}
		for j, agg := range spec.Aggregates {
			row = append(row, finalizeCell(agg, g, j))
		}
		table.Rows = append(table.Rows, row)
	}

	sortRows(&table, spec.Sort)

	if spec.Limit > 0 && len(table.Rows) > spec.Limit {
		table.Rows = table.Rows[:spec.Limit]
	}

	if spec.Finalize != nil {
		spec.Finalize(&table)
	}

	return table
}

func aggregateColumns(spec QuerySpec) []string {
	cols := make([]string, len(spec.Aggregates))
	for i, agg := range spec.Aggregates {
		cols[i] = agg.Column
	}
	return cols
}

// finalizeCell computes the output cell for one aggregate. Every ratio here
// carries an explicit zero-denominator fallback, so no query in the catalog
// can raise a division error at runtime.
func finalizeCell(agg Aggregate, g *group, j int) any {
	switch agg.Kind {
	case AggSum:
		return roundTo(g.sums[j], agg.Round)
	case AggSumInt:
		return int64(math.Round(g.sums[j]))
	case AggMean:
		if g.rows == 0 {
			return 0.0
		}
		return roundTo(g.sums[j]/float64(g.rows), agg.Round)
	case AggCount:
		return int64(g.rows)
	case AggDistinct:
		return int64(len(g.distinct[j]))
	case AggCountIf:
		return int64(g.matched[j])
	case AggSumPerDistinct:
		n := len(g.distinct[j])
		if n == 0 {
			return 0.0
		}
		return roundTo(g.sums[j]/float64(n), agg.Round)
	}
	return nil
}

// sortRows orders the table by the sort keys, with the grouping columns as a
// final tiebreaker so output is deterministic.
func sortRows(t *ResultTable, keys []SortKey) {
	type rankedKey struct {
		col  int
		desc bool
		rank map[string]int
	}

	ranked := make([]rankedKey, 0, len(keys))
	for _, k := range keys {
		rk := rankedKey{col: columnIndex(t, k.Column), desc: k.Desc}
		if len(k.Order) > 0 {
			rk.rank = make(map[string]int, len(k.Order))
			for i, v := range k.Order {
				rk.rank[v] = i
			}
		}
		ranked = append(ranked, rk)
	}

	sort.SliceStable(t.Rows, func(i, j int) bool {
		a, b := t.Rows[i], t.Rows[j]
		for _, k := range ranked {
			if k.col < 0 {
				continue
			}
			cmp := compareCells(a[k.col], b[k.col], k.rank)
			if cmp == 0 {
				continue
			}
			if k.desc {
				return cmp > 0
			}
			return cmp < 0
		}
		// Tiebreak on the leading (grouping) columns in ascending order.
		for col := range a {
			if cmp := compareCells(a[col], b[col], nil); cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
}

// compareCells orders two cells. nil sorts last; numbers compare
// numerically, strings lexically or by the categorical rank when given.
func compareCells(a, b any, rank map[string]int) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return 1
		default:
			return -1
		}
	}

	if rank != nil {
		ra, rb := categoricalRank(a, rank), categoricalRank(b, rank)
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		default:
			return 0
		}
	}

	switch av := a.(type) {
	case float64:
		bv := toFloat(b)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case int64:
		return compareCells(float64(av), b, nil)
	case string:
		return strings.Compare(av, b.(string))
	}
	return 0
}

func categoricalRank(v any, rank map[string]int) int {
	s, ok := v.(string)
	if !ok {
		return len(rank)
	}
	if r, ok := rank[s]; ok {
		return r
	}
	return len(rank)
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

func roundTo(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
