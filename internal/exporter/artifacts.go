package exporter

import (
	"fmt"
	"strconv"

	"taxicli/internal/config"
	"taxicli/internal/summary"
)

// WriteRunArtifacts persists the curation summary artifacts into the
// artifacts directory. Empty tables are skipped rather than written as
// empty files; the textual run summary is always written. Artifacts are
// independent: a failure stops the run but does not roll back files
// already written.
func (w *CSVWriter) WriteRunArtifacts(paths *config.Paths, m *summary.Metrics) error {
	if len(m.Hourly) > 0 {
		records := make([][]string, len(m.Hourly))
		for i, h := range m.Hourly {
			records[i] = []string{FormatInt(h.Hour), FormatInt(h.Trips)}
		}
		path := paths.ArtifactPath(config.HourlyTripsCSV)
		if err := w.WriteSimpleCSV(path, []string{"pickup_hour", "total_trips"}, records); err != nil {
			return fmt.Errorf("failed to write hourly table: %w", err)
		}
	}

	if len(m.Monthly) > 0 {
		records := make([][]string, len(m.Monthly))
		for i, r := range m.Monthly {
			records[i] = []string{r.Month, FormatFloat(r.Total)}
		}
		path := paths.ArtifactPath(config.MonthlyRevenueCSV)
		if err := w.WriteSimpleCSV(path, []string{"pickup_month", "total_amount"}, records); err != nil {
			return fmt.Errorf("failed to write monthly table: %w", err)
		}
	}

	if m.Fares != nil {
		records := [][]string{
			{"count", FormatInt(m.Fares.Count)},
			{"mean", formatStat(m.Fares.Mean)},
			{"std", formatStat(m.Fares.Std)},
			{"min", formatStat(m.Fares.Min)},
			{"25%", formatStat(m.Fares.P25)},
			{"50%", formatStat(m.Fares.P50)},
			{"75%", formatStat(m.Fares.P75)},
			{"max", formatStat(m.Fares.Max)},
		}
		path := paths.ArtifactPath(config.FareStatsCSV)
		if err := w.WriteSimpleCSV(path, []string{"stat", "value"}, records); err != nil {
			return fmt.Errorf("failed to write fare statistics: %w", err)
		}
	}

	summaryPath := paths.ArtifactPath(config.CurationSummaryTXT)
	if err := w.WriteLines(summaryPath, m.Summary.Lines()); err != nil {
		return fmt.Errorf("failed to write run summary: %w", err)
	}
	return nil
}

// formatStat keeps full float precision for statistics values.
func formatStat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
