// Package aggregate builds the extended aggregate tables from a curated
// (or at least time-stamped) trip dataset: fare totals and averages by
// hour, month, and weekday, and trip counts with fare averages by distance
// bucket. It is a downstream consumer of the curation pipeline's output
// schema and performs no filtering of its own.
package aggregate

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"taxicli/internal/config"
	"taxicli/internal/curation"
	"taxicli/internal/dataset"
	"taxicli/internal/exporter"
)

// DistanceBucket is one half-open distance interval [Min, Max).
type DistanceBucket struct {
	Min, Max float64
	Label    string
}

// DistanceBuckets are aligned with the dimension-table generator; trips of
// 100 miles or more fall outside every bucket and are excluded.
var DistanceBuckets = []DistanceBucket{
	{0, 1, "0-1"},
	{1, 2, "1-2"},
	{2, 5, "2-5"},
	{5, 10, "5-10"},
	{10, 20, "10-20"},
	{20, 50, "20-50"},
	{50, 100, "50-100"},
}

// Builder computes aggregate tables.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder creates a builder. A nil logger falls back to the default.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger}
}

// EnsureTemporal makes sure the temporal grouping columns exist. When the
// input is a curated file they are already present; when the tool is
// pointed at a merely cleaned file they are derived from the pickup
// timestamp. No rows are dropped.
func (b *Builder) EnsureTemporal(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if !ds.HasColumn(config.ColPickupTime) {
		return ds, nil
	}
	if ds.HasColumns(config.ColPickupHour, config.ColPickupMonth, config.ColPickupWeekday) {
		return ds, nil
	}

	parsed, err := (curation.ParseTimestamps{Logger: b.logger}).Apply(ds)
	if err != nil {
		return nil, err
	}
	extra := []string{config.ColPickupHour, config.ColPickupMonth, config.ColPickupWeekday}
	return parsed.Map(extra, func(r dataset.Row) dataset.Row {
		if t, ok := dataset.Time(r, config.ColPickupTime); ok {
			r[config.ColPickupHour] = t.Hour()
			r[config.ColPickupMonth] = t.Format("2006-01")
			r[config.ColPickupWeekday] = t.Weekday().String()
		} else {
			r[config.ColPickupHour] = nil
			r[config.ColPickupMonth] = nil
			r[config.ColPickupWeekday] = nil
		}
		return r
	}), nil
}

// Build computes every aggregate table the dataset's schema supports.
func (b *Builder) Build(ds *dataset.Dataset) []exporter.Table {
	var out []exporter.Table
	if t, ok := b.groupedFares(ds, config.ColPickupHour, "agg_hourly_fare", "pickup_hour"); ok {
		out = append(out, t)
	}
	if t, ok := b.groupedFares(ds, config.ColPickupMonth, "agg_monthly_fare", "pickup_month"); ok {
		out = append(out, t)
	}
	if t, ok := b.groupedFares(ds, config.ColPickupWeekday, "agg_weekday_fare", "pickup_weekday"); ok {
		out = append(out, t)
	}
	if t, ok := b.distanceBuckets(ds); ok {
		out = append(out, t)
	}
	b.logger.Info("Aggregate tables built", slog.Int("tables", len(out)))
	return out
}

// groupedFares groups by one key column and reports trip count, summed
// fare, and average fare per group. Group keys sort lexicographically for
// label columns and numerically for the hour column.
func (b *Builder) groupedFares(ds *dataset.Dataset, keyCol, name, header string) (exporter.Table, bool) {
	if !ds.HasColumns(keyCol, config.ColTotalAmount) {
		return exporter.Table{}, false
	}

	type group struct {
		trips int
		total float64
	}
	groups := make(map[string]*group)
	for i := 0; i < ds.Len(); i++ {
		r := ds.Row(i)
		key, ok := groupKey(r, keyCol)
		if !ok {
			continue
		}
		fare, ok := dataset.Float(r, config.ColTotalAmount)
		if !ok {
			continue
		}
		g := groups[key]
		if g == nil {
			g = &group{}
			groups[key] = g
		}
		g.trips++
		g.total += fare
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	if keyCol == config.ColPickupHour {
		sort.Slice(keys, func(i, j int) bool {
			return len(keys[i]) < len(keys[j]) || (len(keys[i]) == len(keys[j]) && keys[i] < keys[j])
		})
	} else {
		sort.Strings(keys)
	}

	records := make([][]string, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		records = append(records, []string{
			k,
			exporter.FormatInt(g.trips),
			exporter.FormatFloat(g.total),
			exporter.FormatFloat(g.total / float64(g.trips)),
		})
	}
	return exporter.Table{
		Name:    name,
		Headers: []string{header, "total_trips", "total_amount", "avg_fare"},
		Records: records,
	}, true
}

// groupKey renders a grouping cell as a stable string key.
func groupKey(r dataset.Row, col string) (string, bool) {
	if s, ok := dataset.String(r, col); ok {
		return s, true
	}
	if f, ok := dataset.Float(r, col); ok {
		return exporter.FormatInt(int(f)), true
	}
	return "", false
}

// distanceBuckets groups trips into the fixed distance buckets,
// left-inclusive, and reports trip count, average fare, and median fare
// per bucket. Buckets with no trips appear with a zero count and empty
// fare columns.
func (b *Builder) distanceBuckets(ds *dataset.Dataset) (exporter.Table, bool) {
	if !ds.HasColumns(config.ColDistance, config.ColTotalAmount) {
		return exporter.Table{}, false
	}

	fares := make([][]float64, len(DistanceBuckets))
	for i := 0; i < ds.Len(); i++ {
		r := ds.Row(i)
		dist, ok := dataset.Float(r, config.ColDistance)
		if !ok {
			continue
		}
		fare, ok := dataset.Float(r, config.ColTotalAmount)
		if !ok {
			continue
		}
		if idx, ok := bucketIndex(dist); ok {
			fares[idx] = append(fares[idx], fare)
		}
	}

	records := make([][]string, 0, len(DistanceBuckets))
	for i, bucket := range DistanceBuckets {
		rec := []string{bucket.Label, exporter.FormatInt(len(fares[i])), "", ""}
		if len(fares[i]) > 0 {
			sort.Float64s(fares[i])
			rec[2] = exporter.FormatFloat(stat.Mean(fares[i], nil))
			rec[3] = exporter.FormatFloat(stat.Quantile(0.5, stat.LinInterp, fares[i], nil))
		}
		records = append(records, rec)
	}
	return exporter.Table{
		Name:    "agg_distance_bucket",
		Headers: []string{"distance_bucket", "total_trips", "avg_fare", "median_fare"},
		Records: records,
	}, true
}

// bucketIndex finds the bucket whose [Min, Max) interval contains dist.
func bucketIndex(dist float64) (int, bool) {
	for i, b := range DistanceBuckets {
		if dist >= b.Min && dist < b.Max {
			return i, true
		}
	}
	return 0, false
}
