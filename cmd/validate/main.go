package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"taxicli/internal/config"
	"taxicli/internal/infrastructure"
	"taxicli/internal/validation"
)

func main() {
	input := flag.String("input", "", "curated CSV to validate (required)")
	sample := flag.Int("sample", validation.DefaultSampleSize, "number of rows to sample from the head of the file")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: validate --input <file> [--sample <rows>]")
		os.Exit(2)
	}

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("validate.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	res, err := validation.New(*sample, cfg.Curation, logger).Validate(*input)
	if err != nil {
		logger.Error("Validation failed",
			slog.String("input", *input),
			slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, "Validation failed:", err)
		os.Exit(1)
	}

	fmt.Printf("Validation OK (sampled %d rows, %d rules)\n", res.RowsChecked, len(res.RulesApplied))
}
