package cleaning

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are tried in order. All ambiguous numeric forms are
// month-first, matching the source data convention.
var dateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
	"2006/01/02",
	"1-2-2006",
	"1/2/06",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate parses a date string accepting the mixed formats found in the
// source data. An unparseable value is an error, never a zero time: silently
// nulling a date would corrupt the derived delivery metrics.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date value")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}
