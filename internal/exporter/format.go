package exporter

import "strconv"

// formatCell renders a result cell for delimited output. Nil cells (absent
// values such as growth with no prior year) render empty, matching how the
// downstream consumers expect missing numbers.
func formatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case int64:
		return strconv.FormatInt(c, 10)
	case int:
		return strconv.Itoa(c)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(c)
	default:
		return ""
	}
}
