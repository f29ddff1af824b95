// Package validation spot-checks a curated file against the bounds the
// curation pipeline enforces. It reads a bounded sample from the head of
// the file rather than the whole thing, so the check stays cheap even on
// multi-gigabyte outputs.
package validation

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"taxicli/internal/config"
	"taxicli/internal/curation"
	"taxicli/internal/errors"
)

// DefaultSampleSize is the number of data rows checked when no override
// is given.
const DefaultSampleSize = 100_000

// Result reports what a passing validation actually covered.
type Result struct {
	RowsChecked  int
	RulesApplied []string
}

// Validator samples a curated CSV and checks the curation bounds.
type Validator struct {
	sampleSize int
	thresholds config.CurationConfig
	logger     *slog.Logger
}

// New creates a validator. A non-positive sample size falls back to the
// default, a nil logger to the default logger.
func New(sampleSize int, thresholds config.CurationConfig, logger *slog.Logger) *Validator {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{sampleSize: sampleSize, thresholds: thresholds, logger: logger}
}

// Validate samples up to sampleSize rows from the head of the file and
// checks every applicable rule. Rules apply only when their column is
// present in the header; the first violating row fails the run with an
// InvariantViolationError naming the rule and row.
func (v *Validator) Validate(path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewMissingInput(path)
		}
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParsingError("input CSV is empty", nil)
	}
	if err != nil {
		return nil, errors.NewParsingError("failed to read header", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	checks := v.buildChecks(cols)
	if len(checks) == 0 {
		v.logger.Warn("No validatable columns in input", slog.String("path", path))
	}

	rows := 0
	for rows < v.sampleSize {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParsingError("failed to read record", err)
		}
		rows++
		for _, c := range checks {
			if err := c.apply(record, rows); err != nil {
				return nil, err
			}
		}
	}

	rules := make([]string, len(checks))
	for i, c := range checks {
		rules[i] = c.rule
	}
	v.logger.Info("Validation passed",
		slog.String("path", path),
		slog.Int("rows_checked", rows),
		slog.Int("rules", len(rules)))
	return &Result{RowsChecked: rows, RulesApplied: rules}, nil
}

type check struct {
	rule  string
	apply func(record []string, line int) error
}

// buildChecks wires a check for each rule whose column exists. Numeric
// cells that are empty or unparseable count as violations: the pipeline
// never emits such values, so finding one means the file is not its
// output.
func (v *Validator) buildChecks(cols map[string]int) []check {
	var checks []check

	if idx, ok := cols[config.ColDistance]; ok {
		checks = append(checks, numericCheck("trip_distance_bounds", idx,
			v.thresholds.MinDistance, v.thresholds.MaxDistance, true))
	}
	if idx, ok := cols[config.ColTotalAmount]; ok {
		checks = append(checks, numericCheck("total_amount_bounds", idx,
			0, v.thresholds.MaxFare, false))
	}
	if idx, ok := cols[config.ColPickupTime]; ok {
		checks = append(checks, check{
			rule: "pickup_timestamp_parseable",
			apply: func(record []string, line int) error {
				if idx >= len(record) || record[idx] == "" {
					// null timestamps survive curation, so an empty cell is fine
					return nil
				}
				if _, ok := curation.ParseTime(record[idx]); !ok {
					return errors.NewInvariantViolation("pickup_timestamp_parseable", line,
						fmt.Sprintf("unparseable timestamp %q", record[idx]))
				}
				return nil
			},
		})
	}
	return checks
}

// numericCheck enforces lo <= value <= hi; loInclusive false means the
// lower bound is strict.
func numericCheck(rule string, idx int, lo, hi float64, loInclusive bool) check {
	return check{
		rule: rule,
		apply: func(record []string, line int) error {
			violation := func(detail string) error {
				return errors.NewInvariantViolation(rule, line, detail)
			}
			if idx >= len(record) || record[idx] == "" {
				return violation("missing value")
			}
			val, err := strconv.ParseFloat(record[idx], 64)
			if err != nil {
				return violation(fmt.Sprintf("non-numeric value %q", record[idx]))
			}
			if val < lo || (!loInclusive && val == lo) || val > hi {
				return violation(fmt.Sprintf("value %v outside bounds", val))
			}
			return nil
		},
	}
}
