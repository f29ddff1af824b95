package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"taxicli/internal/config"
	"taxicli/internal/infrastructure"
	"taxicli/internal/split"
)

func main() {
	input := flag.String("input", "", "curated CSV (defaults to data/nyc_taxi_curated.csv)")
	rows := flag.Int("rows", split.DefaultRowsPerPart, "maximum data rows per part")
	outdir := flag.String("outdir", "", "output directory for parts (defaults to data/splits/)")
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
		*outdir = paths.SplitsDir
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("split.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting dataset split",
		slog.String("input", *input),
		slog.Int("rows_per_part", *rows),
		slog.String("outdir", *outdir))

	splitter := split.New(*rows, logger)
	parts, err := splitter.Split(*input, *outdir)
	if err != nil {
		logger.Error("Split failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := splitter.WriteManifest(*outdir, parts); err != nil {
		logger.Error("Failed to write part manifest", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Generated %d files:\n", len(parts))
	for _, p := range parts {
		fmt.Println(" -", p.Path)
	}
}
