package curation

import (
	"taxicli/internal/config"
	"taxicli/internal/dataset"
)

// coordPair names the latitude/longitude columns of one trip endpoint.
type coordPair struct {
	lat, lon string
}

var coordPairs = []coordPair{
	{lat: config.ColPickupLat, lon: config.ColPickupLon},
	{lat: config.ColDropoffLat, lon: config.ColDropoffLon},
}

// FilterBounds removes rows whose coordinates fall outside the NYC bounding
// box, inclusive on all four limits. Each endpoint pair gates filtering
// only when both of its columns are present; with both pairs present the
// conditions compose by conjunction, pickup first. A coordinate that is
// present but missing or unparseable drops the row: a trip without a
// usable position cannot be confirmed inside the box.
type FilterBounds struct{}

func (FilterBounds) ID() string   { return "filter_bounds" }
func (FilterBounds) Name() string { return "Geo-Bounds Filter" }

func (FilterBounds) CanRun(ds *dataset.Dataset) bool {
	for _, p := range coordPairs {
		if ds.HasColumns(p.lat, p.lon) {
			return true
		}
	}
	return false
}

func (FilterBounds) Apply(ds *dataset.Dataset) (*dataset.Dataset, error) {
	out := ds
	for _, p := range coordPairs {
		if !out.HasColumns(p.lat, p.lon) {
			continue
		}
		pair := p
		out = out.Filter(func(r dataset.Row) bool {
			lat, ok := dataset.Float(r, pair.lat)
			if !ok {
				return false
			}
			lon, ok := dataset.Float(r, pair.lon)
			if !ok {
				return false
			}
			return lat >= config.LatMin && lat <= config.LatMax &&
				lon >= config.LonMin && lon <= config.LonMax
		})
	}
	return out, nil
}
