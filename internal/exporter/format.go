package exporter

import (
	"fmt"
	"strconv"
	"time"
)

// timestampLayout is the on-disk form of parsed timestamp cells; it matches
// the primary layout the temporal parser accepts, so a curated file can be
// fed back through the pipeline.
const timestampLayout = "2006-01-02 15:04:05"

// formatCell renders a dataset cell for CSV output. Null cells render as
// the empty field.
func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format(timestampLayout)
	default:
		return fmt.Sprint(t)
	}
}

// FormatFloat formats a float64 value for CSV output with exactly 2 decimal
// places, so values like 13.4 appear as 13.40.
func FormatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// FormatInt formats an int value for CSV output
func FormatInt(i int) string {
	return strconv.Itoa(i)
}
