package curation

import (
	"log/slog"
	"time"

	"taxicli/internal/config"
	"taxicli/internal/dataset"
)

// timeColumns is the fixed set of columns the temporal parser handles.
var timeColumns = []string{config.ColPickupTime, config.ColDropoffTime}

// timeLayouts are tried in order. They cover the NYC TLC export format and
// the ISO-8601 variants seen in intermediate files.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamps converts the recognized timestamp columns from text to
// time.Time values. A value that fails to parse degrades to the null
// marker instead of aborting the stage; downstream stages treat null
// timestamps as "feature not derivable for this row". Timestamp columns
// absent from the schema are skipped silently.
type ParseTimestamps struct {
	Logger *slog.Logger
}

func (ParseTimestamps) ID() string   { return "parse_timestamps" }
func (ParseTimestamps) Name() string { return "Temporal Parser" }

func (ParseTimestamps) CanRun(ds *dataset.Dataset) bool {
	for _, col := range timeColumns {
		if ds.HasColumn(col) {
			return true
		}
	}
	return false
}

func (s ParseTimestamps) Apply(ds *dataset.Dataset) (*dataset.Dataset, error) {
	var present []string
	for _, col := range timeColumns {
		if ds.HasColumn(col) {
			present = append(present, col)
		}
	}

	degraded := 0
	out := ds.Map(nil, func(r dataset.Row) dataset.Row {
		for _, col := range present {
			s, ok := dataset.String(r, col)
			if !ok {
				// already parsed, or null
				if _, isTime := dataset.Time(r, col); !isTime {
					r[col] = nil
				}
				continue
			}
			if t, ok := parseTimestamp(s); ok {
				r[col] = t
			} else {
				r[col] = nil
				degraded++
			}
		}
		return r
	})

	if degraded > 0 && s.Logger != nil {
		s.Logger.Warn("Unparseable timestamp values degraded to null",
			slog.Int("count", degraded))
	}
	return out, nil
}

// ParseTime parses a timestamp value with the layouts the pipeline
// accepts. Other tools use it to check temporal columns the same way the
// pipeline would.
func ParseTime(s string) (time.Time, bool) {
	return parseTimestamp(s)
}

// parseTimestamp tries the known layouts in order. Values carry no zone
// information; they are kept in whatever local time the source used, with
// no conversion.
func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
