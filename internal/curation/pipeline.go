package curation

import (
	"fmt"
	"log/slog"

	"taxicli/internal/config"
	"taxicli/internal/dataset"
)

// Pipeline is the ordered curation pipeline. Stage order is fixed;
// reordering the stages changes results (the duration filter depends on
// parsed timestamps, the numeric filter sees rows the geo filter kept).
type Pipeline struct {
	thresholds config.CurationConfig
	logger     *slog.Logger
	stages     []Stage
}

// New builds the standard five-stage pipeline with the given thresholds.
// The thresholds are bound here and immutable for the pipeline's lifetime.
func New(thresholds config.CurationConfig, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		thresholds: thresholds,
		logger:     logger,
		stages: []Stage{
			NormalizeSchema{},
			ParseTimestamps{Logger: logger},
			FilterBounds{},
			FilterNumeric{Thresholds: thresholds},
			DeriveFeatures{Thresholds: thresholds},
		},
	}
}

// Run executes the pipeline over the dataset and returns the curated
// dataset together with a report of what each stage did.
func (p *Pipeline) Run(ds *dataset.Dataset) (*dataset.Dataset, *RunReport, error) {
	report := &RunReport{OriginalRows: ds.Len()}

	cur := ds
	for _, stage := range p.stages {
		sr := StageReport{ID: stage.ID(), Name: stage.Name(), RowsIn: cur.Len()}

		if !stage.CanRun(cur) {
			sr.Skipped = true
			sr.RowsOut = cur.Len()
			report.Stages = append(report.Stages, sr)
			p.logger.Warn("Stage skipped, required columns absent",
				slog.String("stage", stage.ID()))
			continue
		}

		next, err := stage.Apply(cur)
		if err != nil {
			return nil, nil, fmt.Errorf("stage %s failed: %w", stage.ID(), err)
		}
		sr.RowsOut = next.Len()
		report.Stages = append(report.Stages, sr)
		p.logger.Info("Stage completed",
			slog.String("stage", stage.ID()),
			slog.Int("rows_in", sr.RowsIn),
			slog.Int("rows_out", sr.RowsOut))
		cur = next
	}

	report.CuratedRows = cur.Len()
	return cur, report, nil
}
