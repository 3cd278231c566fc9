package cleaning

import "strings"

// NormalizeColumn converts a raw header to its normalized form: trimmed,
// lowercased, spaces and hyphens replaced with underscores. The
// transformation is idempotent.
func NormalizeColumn(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return strings.ToLower(name)
}

// NormalizeHeaders normalizes every header in place order, returning a new
// slice.
func NormalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = NormalizeColumn(h)
	}
	return out
}
