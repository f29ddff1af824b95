package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"taxicli/internal/aggregate"
	"taxicli/internal/config"
	"taxicli/internal/dataset"
	"taxicli/internal/exporter"
	"taxicli/internal/infrastructure"
)

func main() {
	input := flag.String("input", "", "curated CSV (defaults to data/nyc_taxi_curated.csv)")
	outdir := flag.String("outdir", "", "output directory for aggregate tables (defaults to docs/)")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *input == "" {
		*input = filepath.Join(paths.DataDir, config.CuratedCSV)
	}
	if *outdir == "" {
		*outdir = paths.ArtifactsDir
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("aggregate.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting aggregation",
		slog.String("input", *input),
		slog.String("outdir", *outdir))

	ds, err := dataset.Load(*input)
	if err != nil {
		logger.Error("Failed to load input",
			slog.String("path", *input),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	builder := aggregate.NewBuilder(logger)
	ds, err = builder.EnsureTemporal(ds)
	if err != nil {
		logger.Error("Failed to derive temporal columns", slog.String("error", err.Error()))
		os.Exit(1)
	}

	writer := exporter.NewCSVWriter(logger)
	tables := builder.Build(ds)
	for _, t := range tables {
		if err := writer.WriteTable(*outdir, t); err != nil {
			logger.Error("Failed to write aggregate table",
				slog.String("table", t.Name),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	fmt.Printf("Aggregation complete: %d tables\n", len(tables))
	for _, t := range tables {
		fmt.Println(" -", filepath.Join(*outdir, t.Name+".csv"))
	}
}
