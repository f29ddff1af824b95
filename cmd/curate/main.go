package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"taxicli/internal/config"
	"taxicli/internal/curation"
	"taxicli/internal/dataset"
	"taxicli/internal/exporter"
	"taxicli/internal/infrastructure"
	"taxicli/internal/summary"
)

func main() {
	input := flag.String("input", "", "raw trip file, .csv or .xlsx (required)")
	output := flag.String("output", "", "curated CSV path (defaults to data/nyc_taxi_curated.csv)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: curate --input <file> [--output <file>]")
		os.Exit(2)
	}

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *output == "" {
		*output = filepath.Join(paths.DataDir, config.CuratedCSV)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("curate.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting curation",
		slog.String("input", *input),
		slog.String("output", *output))

	ds, err := dataset.Load(*input)
	if err != nil {
		logger.Error("Failed to load input",
			slog.String("path", *input),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Printf("Loaded %d rows\n", ds.Len())

	curated, report, err := curation.New(cfg.Curation, logger).Run(ds)
	if err != nil {
		logger.Error("Curation pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	for _, id := range report.SkippedStages() {
		fmt.Printf("Skipped stage: %s\n", id)
	}

	writer := exporter.NewCSVWriter(logger)
	if err := writer.WriteDataset(*output, curated); err != nil {
		logger.Error("Failed to write curated file",
			slog.String("path", *output),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	metrics := summary.NewSummarizer(logger).Summarize(curated, report.OriginalRows)
	if err := writer.WriteRunArtifacts(paths, metrics); err != nil {
		logger.Error("Failed to write summary artifacts", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Curation completed",
		slog.Int("original_rows", report.OriginalRows),
		slog.Int("curated_rows", report.CuratedRows),
		slog.String("output", *output))
	fmt.Printf("Curation complete: %d of %d rows kept\n", report.CuratedRows, report.OriginalRows)
}
