// Package exporter persists curated datasets and summary artifacts as
// delimited files. It owns all CSV writing conventions: destination
// directories are created as needed, cell formatting is uniform across
// tools, and large outputs go through a streaming writer.
package exporter
