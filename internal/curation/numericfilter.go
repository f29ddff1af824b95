package curation

import (
	"taxicli/internal/config"
	"taxicli/internal/dataset"
)

// FilterNumeric removes fare and distance outliers. Fares must be strictly
// positive and at most MaxFare; distances must lie in
// [MinDistance, MaxDistance], both ends inclusive. Each condition applies
// only when its column is present; absence of one column never disables
// the other. As in the geo filter, a present but unparseable value drops
// the row.
type FilterNumeric struct {
	Thresholds config.CurationConfig
}

func (FilterNumeric) ID() string   { return "filter_numeric" }
func (FilterNumeric) Name() string { return "Numeric-Outlier Filter" }

func (FilterNumeric) CanRun(ds *dataset.Dataset) bool {
	return ds.HasColumn(config.ColTotalAmount) || ds.HasColumn(config.ColDistance)
}

func (s FilterNumeric) Apply(ds *dataset.Dataset) (*dataset.Dataset, error) {
	out := ds
	if out.HasColumn(config.ColTotalAmount) {
		out = out.Filter(func(r dataset.Row) bool {
			fare, ok := dataset.Float(r, config.ColTotalAmount)
			return ok && fare > 0 && fare <= s.Thresholds.MaxFare
		})
	}
	if out.HasColumn(config.ColDistance) {
		out = out.Filter(func(r dataset.Row) bool {
			dist, ok := dataset.Float(r, config.ColDistance)
			return ok && dist >= s.Thresholds.MinDistance && dist <= s.Thresholds.MaxDistance
		})
	}
	return out, nil
}
