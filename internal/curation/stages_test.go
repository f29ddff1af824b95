package curation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxicli/internal/config"
	"taxicli/internal/dataset"
)

func defaultThresholds() config.CurationConfig {
	return config.Default().Curation
}

func TestNormalizeSchemaDeduplicates(t *testing.T) {
	ds := dataset.FromRows(
		[]string{"total_amount", "trip_distance", "total_amount"},
		[]dataset.Row{{"total_amount": "10", "trip_distance": "2"}},
	)

	out, err := NormalizeSchema{}.Apply(ds)
	require.NoError(t, err)

	assert.Equal(t, []string{"total_amount", "trip_distance"}, out.Columns())
}

func TestNormalizeSchemaRenamesLegacyRateCode(t *testing.T) {
	ds := dataset.FromRows(
		[]string{"RatecodeID", "total_amount"},
		[]dataset.Row{{"RatecodeID": "1", "total_amount": "10"}},
	)

	out, err := NormalizeSchema{}.Apply(ds)
	require.NoError(t, err)

	assert.Equal(t, []string{"RateCodeID", "total_amount"}, out.Columns())
	assert.Equal(t, "1", out.Row(0)["RateCodeID"])
	_, hasLegacy := out.Row(0)["RatecodeID"]
	assert.False(t, hasLegacy)
}

func TestNormalizeSchemaIdempotent(t *testing.T) {
	ds := dataset.FromRows(
		[]string{"RatecodeID", "fare", "fare"},
		[]dataset.Row{{"RatecodeID": "2", "fare": "8"}},
	)

	once, err := NormalizeSchema{}.Apply(ds)
	require.NoError(t, err)
	twice, err := NormalizeSchema{}.Apply(once)
	require.NoError(t, err)

	assert.Equal(t, once.Columns(), twice.Columns())
	assert.Equal(t, once.Row(0), twice.Row(0))
}

func TestNormalizeSchemaKeepsCanonicalWhenBothPresent(t *testing.T) {
	ds := dataset.FromRows(
		[]string{"RateCodeID", "RatecodeID"},
		[]dataset.Row{{"RateCodeID": "1", "RatecodeID": "9"}},
	)

	out, err := NormalizeSchema{}.Apply(ds)
	require.NoError(t, err)

	assert.Equal(t, "1", out.Row(0)["RateCodeID"])
}

func TestParseTimestamps(t *testing.T) {
	ds := dataset.FromRows(
		[]string{config.ColPickupTime, config.ColDropoffTime},
		[]dataset.Row{
			{config.ColPickupTime: "2024-01-15 08:30:00", config.ColDropoffTime: "2024-01-15T09:00:00"},
			{config.ColPickupTime: "not-a-date", config.ColDropoffTime: ""},
			{config.ColPickupTime: "2024-01-15", config.ColDropoffTime: "2024-01-15 10:00:00"},
		},
	)

	out, err := ParseTimestamps{}.Apply(ds)
	require.NoError(t, err)

	pickup, ok := dataset.Time(out.Row(0), config.ColPickupTime)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC), pickup)

	dropoff, ok := dataset.Time(out.Row(0), config.ColDropoffTime)
	require.True(t, ok)
	assert.Equal(t, 9, dropoff.Hour())

	// degradation, not failure
	assert.Nil(t, out.Row(1)[config.ColPickupTime])
	assert.Nil(t, out.Row(1)[config.ColDropoffTime])

	dateOnly, ok := dataset.Time(out.Row(2), config.ColPickupTime)
	require.True(t, ok)
	assert.Equal(t, 0, dateOnly.Hour())
}

func TestParseTimestampsCanRun(t *testing.T) {
	withPickup := dataset.FromRows([]string{config.ColPickupTime}, nil)
	without := dataset.FromRows([]string{"total_amount"}, nil)

	assert.True(t, ParseTimestamps{}.CanRun(withPickup))
	assert.False(t, ParseTimestamps{}.CanRun(without))
}

func TestFilterBounds(t *testing.T) {
	cols := []string{config.ColPickupLat, config.ColPickupLon}
	tests := []struct {
		name string
		row  dataset.Row
		kept bool
	}{
		{
			name: "inside box",
			row:  dataset.Row{config.ColPickupLat: "40.75", config.ColPickupLon: "-73.98"},
			kept: true,
		},
		{
			name: "latitude below box",
			row:  dataset.Row{config.ColPickupLat: "40.0", config.ColPickupLon: "-73.98"},
			kept: false,
		},
		{
			name: "longitude east of box",
			row:  dataset.Row{config.ColPickupLat: "40.75", config.ColPickupLon: "-72.0"},
			kept: false,
		},
		{
			name: "on the boundary is inside",
			row:  dataset.Row{config.ColPickupLat: "40.4", config.ColPickupLon: "-74.5"},
			kept: true,
		},
		{
			name: "unparseable coordinate drops the row",
			row:  dataset.Row{config.ColPickupLat: "", config.ColPickupLon: "-73.98"},
			kept: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := dataset.FromRows(cols, []dataset.Row{tt.row})
			out, err := FilterBounds{}.Apply(ds)
			require.NoError(t, err)
			if tt.kept {
				assert.Equal(t, 1, out.Len())
			} else {
				assert.Equal(t, 0, out.Len())
			}
		})
	}
}

func TestFilterBoundsSinglePairGatesOnly(t *testing.T) {
	// dropoff columns absent: only the pickup pair is enforced
	ds := dataset.FromRows(
		[]string{config.ColPickupLat, config.ColPickupLon},
		[]dataset.Row{{config.ColPickupLat: "40.75", config.ColPickupLon: "-73.98"}},
	)
	out, err := FilterBounds{}.Apply(ds)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())
}

func TestFilterBoundsCanRun(t *testing.T) {
	latOnly := dataset.FromRows([]string{config.ColPickupLat}, nil)
	assert.False(t, FilterBounds{}.CanRun(latOnly))

	dropoffPair := dataset.FromRows([]string{config.ColDropoffLat, config.ColDropoffLon}, nil)
	assert.True(t, FilterBounds{}.CanRun(dropoffPair))
}

func TestFilterNumeric(t *testing.T) {
	stage := FilterNumeric{Thresholds: defaultThresholds()}
	cols := []string{config.ColTotalAmount, config.ColDistance}
	tests := []struct {
		name string
		row  dataset.Row
		kept bool
	}{
		{
			name: "plausible trip",
			row:  dataset.Row{config.ColTotalAmount: "12.50", config.ColDistance: "3.1"},
			kept: true,
		},
		{
			name: "negative fare",
			row:  dataset.Row{config.ColTotalAmount: "-5", config.ColDistance: "3.1"},
			kept: false,
		},
		{
			name: "zero fare is excluded",
			row:  dataset.Row{config.ColTotalAmount: "0", config.ColDistance: "3.1"},
			kept: false,
		},
		{
			name: "fare at the cap is included",
			row:  dataset.Row{config.ColTotalAmount: "1000", config.ColDistance: "3.1"},
			kept: true,
		},
		{
			name: "fare above the cap",
			row:  dataset.Row{config.ColTotalAmount: "1000.01", config.ColDistance: "3.1"},
			kept: false,
		},
		{
			name: "distance at the minimum is included",
			row:  dataset.Row{config.ColTotalAmount: "12.50", config.ColDistance: "0.05"},
			kept: true,
		},
		{
			name: "distance below the minimum",
			row:  dataset.Row{config.ColTotalAmount: "12.50", config.ColDistance: "0.01"},
			kept: false,
		},
		{
			name: "distance above the maximum",
			row:  dataset.Row{config.ColTotalAmount: "12.50", config.ColDistance: "120"},
			kept: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := dataset.FromRows(cols, []dataset.Row{tt.row})
			out, err := stage.Apply(ds)
			require.NoError(t, err)
			if tt.kept {
				assert.Equal(t, 1, out.Len())
			} else {
				assert.Equal(t, 0, out.Len())
			}
		})
	}
}

func TestFilterNumericFareOnlyDataset(t *testing.T) {
	// distance column absent: only the fare condition applies
	stage := FilterNumeric{Thresholds: defaultThresholds()}
	ds := dataset.FromRows(
		[]string{config.ColTotalAmount},
		[]dataset.Row{
			{config.ColTotalAmount: "12.50"},
			{config.ColTotalAmount: "-1"},
		},
	)

	out, err := stage.Apply(ds)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Len())
}

func TestDeriveFeatures(t *testing.T) {
	stage := DeriveFeatures{Thresholds: defaultThresholds()}
	ds := dataset.FromRows(
		[]string{config.ColPickupTime, config.ColDropoffTime},
		[]dataset.Row{{
			config.ColPickupTime:  time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
			config.ColDropoffTime: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		}},
	)

	out, err := stage.Apply(ds)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())

	row := out.Row(0)
	assert.Equal(t, 8, row[config.ColPickupHour])
	assert.Equal(t, "2024-01-15", row[config.ColPickupDate])
	assert.Equal(t, "2024-01", row[config.ColPickupMonth])
	assert.Equal(t, "Monday", row[config.ColPickupWeekday])
	assert.Equal(t, 30.0, row[config.ColTripDuration])

	assert.Equal(t, []string{
		config.ColPickupTime, config.ColDropoffTime,
		config.ColPickupHour, config.ColPickupDate, config.ColPickupMonth,
		config.ColPickupWeekday, config.ColTripDuration,
	}, out.Columns())
}

func TestDeriveFeaturesNullPickupIsKept(t *testing.T) {
	stage := DeriveFeatures{Thresholds: defaultThresholds()}
	ds := dataset.FromRows(
		[]string{config.ColPickupTime, config.ColDropoffTime},
		[]dataset.Row{{
			config.ColPickupTime:  nil,
			config.ColDropoffTime: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		}},
	)

	out, err := stage.Apply(ds)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())

	row := out.Row(0)
	assert.Nil(t, row[config.ColPickupHour])
	assert.Nil(t, row[config.ColPickupWeekday])
	assert.Nil(t, row[config.ColTripDuration])
}

func TestDeriveFeaturesDurationFilter(t *testing.T) {
	stage := DeriveFeatures{Thresholds: defaultThresholds()}
	base := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		dropoff any
		kept    bool
		wantDur any
	}{
		{name: "thirty minutes", dropoff: base.Add(30 * time.Minute), kept: true, wantDur: 30.0},
		{name: "negative duration", dropoff: base.Add(-10 * time.Minute), kept: false},
		{name: "exactly twelve hours", dropoff: base.Add(720 * time.Minute), kept: true, wantDur: 720.0},
		{name: "over twelve hours", dropoff: base.Add(721 * time.Minute), kept: false},
		{name: "zero duration", dropoff: base, kept: true, wantDur: 0.0},
		{name: "null dropoff is kept", dropoff: nil, kept: true, wantDur: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := dataset.FromRows(
				[]string{config.ColPickupTime, config.ColDropoffTime},
				[]dataset.Row{{config.ColPickupTime: base, config.ColDropoffTime: tt.dropoff}},
			)
			out, err := stage.Apply(ds)
			require.NoError(t, err)
			if !tt.kept {
				assert.Equal(t, 0, out.Len())
				return
			}
			require.Equal(t, 1, out.Len())
			assert.Equal(t, tt.wantDur, out.Row(0)[config.ColTripDuration])
		})
	}
}

func TestDeriveFeaturesWithoutDropoffColumn(t *testing.T) {
	stage := DeriveFeatures{Thresholds: defaultThresholds()}
	ds := dataset.FromRows(
		[]string{config.ColPickupTime},
		[]dataset.Row{{config.ColPickupTime: time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)}},
	)

	out, err := stage.Apply(ds)
	require.NoError(t, err)

	assert.False(t, out.HasColumn(config.ColTripDuration))
	assert.Equal(t, 1, out.Len())
	assert.Equal(t, 8, out.Row(0)[config.ColPickupHour])
}
