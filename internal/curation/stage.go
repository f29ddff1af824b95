package curation

import (
	"taxicli/internal/dataset"
)

// Stage is a single step of the curation pipeline. Each stage declares the
// columns it needs through CanRun; the pipeline consults the current schema
// and skips (rather than no-op executes) a stage whose requirements are not
// met. Apply is a pure transformation: it returns a new dataset and leaves
// its input observable state unchanged.
type Stage interface {
	// ID returns the unique identifier for this stage
	ID() string

	// Name returns the human-readable name for this stage
	Name() string

	// CanRun reports whether the dataset's current schema satisfies the
	// stage's column requirements
	CanRun(ds *dataset.Dataset) bool

	// Apply runs the stage and returns the transformed dataset
	Apply(ds *dataset.Dataset) (*dataset.Dataset, error)
}

// StageReport records what a single stage did during a run.
type StageReport struct {
	ID      string
	Name    string
	Skipped bool
	RowsIn  int
	RowsOut int
}

// RunReport records the outcome of one pipeline run, including which stages
// were skipped because their columns were absent. Skips are surfaced so an
// operator can see reduced validation coverage instead of silently getting
// a less-filtered dataset.
type RunReport struct {
	OriginalRows int
	CuratedRows  int
	Stages       []StageReport
}

// SkippedStages returns the names of stages that did not run.
func (r *RunReport) SkippedStages() []string {
	var out []string
	for _, s := range r.Stages {
		if s.Skipped {
			out = append(out, s.Name)
		}
	}
	return out
}
