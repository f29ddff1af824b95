package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"taxicli/internal/config"
	"taxicli/internal/dims"
	"taxicli/internal/exporter"
	"taxicli/internal/infrastructure"
)

func main() {
	monthly := flag.String("monthly", "", "monthly revenue CSV (defaults to docs/monthly_revenue.csv)")
	outdir := flag.String("outdir", "", "output directory for dimension tables (defaults to data/dim/)")
	startStr := flag.String("start", "", "override calendar start date (YYYY-MM-DD)")
	endStr := flag.String("end", "", "override calendar end date (YYYY-MM-DD)")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *monthly == "" {
		*monthly = paths.ArtifactPath(config.MonthlyRevenueCSV)
	}
	if *outdir == "" {
		*outdir = paths.DimsDir
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("dims.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	var start, end time.Time
	if *startStr != "" && *endStr != "" {
		start, err = time.Parse("2006-01-02", *startStr)
		if err != nil {
			logger.Error("Invalid --start date", slog.String("error", err.Error()))
			os.Exit(1)
		}
		end, err = time.Parse("2006-01-02", *endStr)
		if err != nil {
			logger.Error("Invalid --end date", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		start, end, err = dims.DetectDateRange(*monthly)
		if err != nil {
			logger.Error("Failed to detect calendar range",
				slog.String("monthly", *monthly),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	writer := exporter.NewCSVWriter(logger)
	tables := dims.NewGenerator(logger).Build(start, end)
	for _, t := range tables {
		if err := writer.WriteTable(*outdir, t); err != nil {
			logger.Error("Failed to write dimension table",
				slog.String("table", t.Name),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	fmt.Println("Exported dimension CSVs:")
	for _, t := range tables {
		fmt.Println(" -", filepath.Join(*outdir, t.Name+".csv"))
	}
}
