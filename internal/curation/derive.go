package curation

import (
	"taxicli/internal/config"
	"taxicli/internal/dataset"
)

// derivedColumns in output order.
var derivedColumns = []string{
	config.ColPickupHour,
	config.ColPickupDate,
	config.ColPickupMonth,
	config.ColPickupWeekday,
	config.ColTripDuration,
}

// DeriveFeatures computes the temporal features from the pickup timestamp
// and the trip duration from the pickup/dropoff pair, then applies the
// duration filter.
//
// A row with a null pickup timestamp gets null temporal features; it is
// not dropped here. trip_duration_min is derived only when both timestamp
// columns are in the schema and both values are non-null, and the duration
// filter (0 ≤ duration ≤ MaxDurationMinutes, inclusive) applies only to
// rows whose duration exists.
type DeriveFeatures struct {
	Thresholds config.CurationConfig
}

func (DeriveFeatures) ID() string   { return "derive_features" }
func (DeriveFeatures) Name() string { return "Feature Deriver" }

func (DeriveFeatures) CanRun(ds *dataset.Dataset) bool {
	return ds.HasColumn(config.ColPickupTime)
}

func (s DeriveFeatures) Apply(ds *dataset.Dataset) (*dataset.Dataset, error) {
	withDropoff := ds.HasColumn(config.ColDropoffTime)

	extra := derivedColumns
	if !withDropoff {
		extra = derivedColumns[:len(derivedColumns)-1]
	}

	out := ds.Map(extra, func(r dataset.Row) dataset.Row {
		pickup, ok := dataset.Time(r, config.ColPickupTime)
		if ok {
			r[config.ColPickupHour] = pickup.Hour()
			r[config.ColPickupDate] = pickup.Format("2006-01-02")
			r[config.ColPickupMonth] = pickup.Format("2006-01")
			r[config.ColPickupWeekday] = pickup.Weekday().String()
		} else {
			r[config.ColPickupHour] = nil
			r[config.ColPickupDate] = nil
			r[config.ColPickupMonth] = nil
			r[config.ColPickupWeekday] = nil
		}

		if withDropoff {
			dropoff, dok := dataset.Time(r, config.ColDropoffTime)
			if ok && dok {
				r[config.ColTripDuration] = dropoff.Sub(pickup).Minutes()
			} else {
				r[config.ColTripDuration] = nil
			}
		}
		return r
	})

	if !withDropoff {
		return out, nil
	}
	return out.Filter(func(r dataset.Row) bool {
		dur, ok := dataset.Float(r, config.ColTripDuration)
		if !ok {
			// no computable duration, the rule does not apply
			return true
		}
		return dur >= 0 && dur <= s.Thresholds.MaxDurationMinutes
	}), nil
}
