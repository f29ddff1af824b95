// Package curation implements the core trip-record curation pipeline: a
// fixed, ordered sequence of deterministic filtering and feature-derivation
// stages over one in-memory dataset.
//
// # Stages
//
// 1. Schema Normalizer: deduplicate column names, canonicalize variants
// 2. Temporal Parser: text timestamps to time.Time, unparseable to null
// 3. Geo-Bounds Filter: drop trips outside the NYC bounding box
// 4. Numeric-Outlier Filter: drop implausible fares and distances
// 5. Feature Deriver: hour/date/month/weekday/duration columns, then the
// duration filter
//
// Each stage's output is the next stage's input. Stages whose required
// columns are absent from the current schema are skipped and recorded in
// the RunReport, so operators can see reduced filtering coverage.
//
// Re-running the pipeline on its own output is a fixed point: no further
// rows are removed and the derived values do not change.
package curation
