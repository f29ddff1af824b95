// Package config is the single source of truth for taxicli configuration:
// logging setup, curation thresholds, the NYC bounding box, recognized
// column names, and output paths.
//
// Configuration is loaded from an optional taxicli.yaml file and TAXI_*
// environment variables, with environment taking precedence. Thresholds are
// bound once per pipeline run and never mutated afterwards.
package config
