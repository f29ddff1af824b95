// Package summary computes the per-run summary artifacts of the curation
// pipeline: the hourly trip-count table, the monthly revenue table,
// descriptive fare statistics, and the textual run summary. Artifacts are
// computed once from the final curated dataset and never merged back into
// it. A sub-computation whose required column is absent yields an empty
// artifact; the run does not fail.
package summary

import (
	"fmt"
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"taxicli/internal/config"
	"taxicli/internal/dataset"
)

// HourlyCount is one row of the hourly trip-count table.
type HourlyCount struct {
	Hour  int
	Trips int
}

// MonthlyRevenue is one row of the monthly revenue table.
type MonthlyRevenue struct {
	Month string
	Total float64
}

// FareStats holds descriptive statistics of the fare column. Std is the
// sample standard deviation; the percentiles use linear interpolation.
type FareStats struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	P25   float64
	P50   float64
	P75   float64
	Max   float64
}

// PeakHour is the hour with the most trips, ties broken by smallest hour.
type PeakHour struct {
	Hour  int
	Trips int
}

// RunSummary is the textual summary of one pipeline run.
type RunSummary struct {
	OriginalRows int
	CuratedRows  int
	ReductionPct float64
	Peak         *PeakHour
}

// Lines renders the run summary in its on-disk form.
func (s RunSummary) Lines() []string {
	lines := []string{
		fmt.Sprintf("Original rows: %d", s.OriginalRows),
		fmt.Sprintf("Curated rows: %d", s.CuratedRows),
		fmt.Sprintf("Reduction %%: %.2f", s.ReductionPct),
	}
	if s.Peak != nil {
		lines = append(lines, fmt.Sprintf("Peak hour: %d with %d trips", s.Peak.Hour, s.Peak.Trips))
	}
	return lines
}

// Metrics bundles every artifact of one run.
type Metrics struct {
	Hourly  []HourlyCount
	Monthly []MonthlyRevenue
	Fares   *FareStats
	Summary RunSummary
}

// Summarizer computes Metrics from a curated dataset.
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a summarizer. A nil logger falls back to the
// default slog logger.
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger}
}

// Summarize computes all artifacts from the curated dataset. originalRows
// is the row count before any filtering.
func (s *Summarizer) Summarize(ds *dataset.Dataset, originalRows int) *Metrics {
	m := &Metrics{
		Hourly:  s.hourlyCounts(ds),
		Monthly: s.monthlyRevenue(ds),
		Fares:   s.fareStats(ds),
	}
	m.Summary = RunSummary{
		OriginalRows: originalRows,
		CuratedRows:  ds.Len(),
		ReductionPct: ReductionPercent(originalRows, ds.Len()),
		Peak:         peakHour(m.Hourly),
	}

	s.logger.Info("Summary computed",
		slog.Int("original_rows", m.Summary.OriginalRows),
		slog.Int("curated_rows", m.Summary.CuratedRows),
		slog.Int("hourly_rows", len(m.Hourly)),
		slog.Int("monthly_rows", len(m.Monthly)))
	return m
}

// ReductionPercent computes 100*(1-curated/original); a run over an empty
// input reduces nothing, so original of zero reports 0.
func ReductionPercent(original, curated int) float64 {
	if original == 0 {
		return 0
	}
	return 100 * (1 - float64(curated)/float64(original))
}

func (s *Summarizer) hourlyCounts(ds *dataset.Dataset) []HourlyCount {
	if !ds.HasColumn(config.ColPickupHour) {
		return nil
	}
	counts := make(map[int]int)
	for i := 0; i < ds.Len(); i++ {
		h, ok := dataset.Float(ds.Row(i), config.ColPickupHour)
		if !ok {
			continue
		}
		counts[int(h)]++
	}
	out := make([]HourlyCount, 0, len(counts))
	for h, n := range counts {
		out = append(out, HourlyCount{Hour: h, Trips: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

func (s *Summarizer) monthlyRevenue(ds *dataset.Dataset) []MonthlyRevenue {
	if !ds.HasColumns(config.ColPickupMonth, config.ColTotalAmount) {
		return nil
	}
	totals := make(map[string]float64)
	for i := 0; i < ds.Len(); i++ {
		r := ds.Row(i)
		month, ok := dataset.String(r, config.ColPickupMonth)
		if !ok {
			continue
		}
		fare, ok := dataset.Float(r, config.ColTotalAmount)
		if !ok {
			continue
		}
		totals[month] += fare
	}
	out := make([]MonthlyRevenue, 0, len(totals))
	for m, total := range totals {
		out = append(out, MonthlyRevenue{Month: m, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func (s *Summarizer) fareStats(ds *dataset.Dataset) *FareStats {
	if !ds.HasColumn(config.ColTotalAmount) {
		return nil
	}
	var fares []float64
	for i := 0; i < ds.Len(); i++ {
		if f, ok := dataset.Float(ds.Row(i), config.ColTotalAmount); ok {
			fares = append(fares, f)
		}
	}
	if len(fares) == 0 {
		return nil
	}
	sort.Float64s(fares)
	return &FareStats{
		Count: len(fares),
		Mean:  stat.Mean(fares, nil),
		Std:   stat.StdDev(fares, nil),
		Min:   fares[0],
		P25:   stat.Quantile(0.25, stat.LinInterp, fares, nil),
		P50:   stat.Quantile(0.5, stat.LinInterp, fares, nil),
		P75:   stat.Quantile(0.75, stat.LinInterp, fares, nil),
		Max:   fares[len(fares)-1],
	}
}

// peakHour returns the hour with the maximum trip count. hourly is sorted
// ascending, so the first strict maximum wins ties with the smallest hour.
func peakHour(hourly []HourlyCount) *PeakHour {
	if len(hourly) == 0 {
		return nil
	}
	best := PeakHour{Hour: hourly[0].Hour, Trips: hourly[0].Trips}
	for _, h := range hourly[1:] {
		if h.Trips > best.Trips {
			best = PeakHour{Hour: h.Hour, Trips: h.Trips}
		}
	}
	return &best
}
