package curation

import (
	"taxicli/internal/config"
	"taxicli/internal/dataset"
)

// renameMap canonicalizes known legacy column-name variants.
var renameMap = map[string]string{
	config.ColRateCodeLegacy: config.ColRateCodeCanonical,
}

// NormalizeSchema deduplicates column names, keeping the leftmost
// occurrence, and applies the fixed rename table. Both rules are
// idempotent; a dataset with no duplicates and no legacy names passes
// through unchanged.
type NormalizeSchema struct{}

func (NormalizeSchema) ID() string   { return "normalize_schema" }
func (NormalizeSchema) Name() string { return "Schema Normalizer" }

func (NormalizeSchema) CanRun(*dataset.Dataset) bool { return true }

func (NormalizeSchema) Apply(ds *dataset.Dataset) (*dataset.Dataset, error) {
	seen := make(map[string]struct{})
	columns := make([]string, 0, len(ds.Columns()))
	for _, c := range ds.Columns() {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		columns = append(columns, c)
	}

	// Rename only when the canonical name is not already taken, so a
	// dataset carrying both spellings keeps the canonical column intact.
	renames := make(map[string]string)
	for i, c := range columns {
		canonical, legacy := renameMap[c]
		if !legacy {
			continue
		}
		if _, taken := seen[canonical]; taken {
			continue
		}
		columns[i] = canonical
		renames[c] = canonical
	}

	out := ds.WithColumns(columns)
	if len(renames) == 0 {
		return out, nil
	}
	return out.Map(nil, func(r dataset.Row) dataset.Row {
		for old, canonical := range renames {
			if v, ok := r[old]; ok {
				r[canonical] = v
				delete(r, old)
			}
		}
		return r
	}), nil
}
