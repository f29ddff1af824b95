package dataset

import (
	"strconv"
	"time"
)

// Row maps column names to cell values. A cell is one of string, float64,
// int, time.Time, or nil. A nil (or absent) value is the null marker used
// for unparseable timestamps and undefined derived features.
type Row map[string]any

// Dataset is an ordered sequence of rows over an ordered list of columns.
// Row order is preserved by every operation: filters remove rows but never
// reorder, and derivations append columns without touching row order.
type Dataset struct {
	columns []string
	rows    []Row
}

// FromRows builds a dataset from a column order and rows. The caller keeps
// no ownership of the slices.
func FromRows(columns []string, rows []Row) *Dataset {
	return &Dataset{columns: columns, rows: rows}
}

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// HasColumn reports whether the named column is part of the schema.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.columns {
		if c == name {
			return true
		}
	}
	return false
}

// HasColumns reports whether every named column is part of the schema.
func (d *Dataset) HasColumns(names ...string) bool {
	for _, n := range names {
		if !d.HasColumn(n) {
			return false
		}
	}
	return true
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Row returns the i-th row.
func (d *Dataset) Row(i int) Row {
	return d.rows[i]
}

// Filter returns a new dataset containing, in original order, the rows for
// which keep returns true. Row values are shared with the receiver.
func (d *Dataset) Filter(keep func(Row) bool) *Dataset {
	out := make([]Row, 0, len(d.rows))
	for _, r := range d.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return &Dataset{columns: d.columns, rows: out}
}

// Map returns a new dataset with extra columns appended to the schema and
// each row replaced by fn's result. fn must not mutate its argument; it
// receives a shallow copy it may extend freely.
func (d *Dataset) Map(extraColumns []string, fn func(Row) Row) *Dataset {
	columns := make([]string, 0, len(d.columns)+len(extraColumns))
	columns = append(columns, d.columns...)
	for _, c := range extraColumns {
		if !d.HasColumn(c) {
			columns = append(columns, c)
		}
	}
	rows := make([]Row, len(d.rows))
	for i, r := range d.rows {
		clone := make(Row, len(r)+len(extraColumns))
		for k, v := range r {
			clone[k] = v
		}
		rows[i] = fn(clone)
	}
	return &Dataset{columns: columns, rows: rows}
}

// WithColumns returns a new dataset over the same rows with a replacement
// column order. Used by the schema normalizer.
func (d *Dataset) WithColumns(columns []string) *Dataset {
	return &Dataset{columns: columns, rows: d.rows}
}

// String returns the string value of a cell, if it is a non-empty string.
func String(r Row, col string) (string, bool) {
	v, ok := r[col]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Float returns the numeric value of a cell. String cells are parsed;
// empty, missing, and unparseable cells report false.
func Float(r Row, col string) (float64, bool) {
	v, ok := r[col]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		if t == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Time returns the timestamp value of a cell. Only cells already parsed to
// time.Time qualify; raw strings report false.
func Time(r Row, col string) (time.Time, bool) {
	v, ok := r[col]
	if !ok || v == nil {
		return time.Time{}, false
	}
	t, ok := v.(time.Time)
	return t, ok
}
