// Package split breaks a large curated CSV into bounded-size part files
// for BI tools that ingest incrementally. The input is streamed row by
// row, never loaded whole, so arbitrarily large curated files are fine.
package split

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"taxicli/internal/errors"
	"taxicli/internal/exporter"
)

// DefaultRowsPerPart bounds each part file when no override is given.
const DefaultRowsPerPart = 2_000_000

// ManifestCSV is the name of the part manifest written next to the parts.
const ManifestCSV = "parts_manifest.csv"

// Part describes one written chunk.
type Part struct {
	Name string
	Path string
	Rows int
}

// Splitter streams a CSV into part files.
type Splitter struct {
	rowsPerPart int
	writer      *exporter.CSVWriter
	logger      *slog.Logger
}

// New creates a splitter. A non-positive rowsPerPart falls back to the
// default, a nil logger to the default logger.
func New(rowsPerPart int, logger *slog.Logger) *Splitter {
	if rowsPerPart <= 0 {
		rowsPerPart = DefaultRowsPerPart
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Splitter{
		rowsPerPart: rowsPerPart,
		writer:      exporter.NewCSVWriter(logger),
		logger:      logger,
	}
}

// Split streams the input CSV into part_NN.csv files under outDir, each
// carrying the header and at most rowsPerPart data rows. Row order is
// preserved across parts. An input with a header and no data rows yields
// no parts.
func (s *Splitter) Split(inputPath, outDir string) ([]Part, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewMissingInput(inputPath)
		}
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParsingError("input CSV is empty", nil)
	}
	if err != nil {
		return nil, errors.NewParsingError("failed to read header", err)
	}

	var (
		parts   []Part
		current *exporter.StreamWriter
	)
	closeCurrent := func() error {
		if current == nil {
			return nil
		}
		p := &parts[len(parts)-1]
		p.Rows = current.Rows()
		err := current.Close()
		current = nil
		return err
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			closeCurrent()
			return nil, errors.NewParsingError("failed to read record", err)
		}

		if current != nil && current.Rows() >= s.rowsPerPart {
			if err := closeCurrent(); err != nil {
				return nil, fmt.Errorf("failed to finish part: %w", err)
			}
		}
		if current == nil {
			name := fmt.Sprintf("part_%02d.csv", len(parts)+1)
			path := filepath.Join(outDir, name)
			current, err = s.writer.CreateStreamWriter(path, header)
			if err != nil {
				return nil, err
			}
			parts = append(parts, Part{Name: name, Path: path})
		}
		if err := current.WriteRecord(record); err != nil {
			closeCurrent()
			return nil, err
		}
	}
	if err := closeCurrent(); err != nil {
		return nil, fmt.Errorf("failed to finish part: %w", err)
	}

	s.logger.Info("Dataset split complete",
		slog.String("input", inputPath),
		slog.Int("parts", len(parts)))
	return parts, nil
}

// WriteManifest records each part and its row count next to the parts.
func (s *Splitter) WriteManifest(outDir string, parts []Part) error {
	records := make([][]string, 0, len(parts))
	for _, p := range parts {
		records = append(records, []string{p.Name, exporter.FormatInt(p.Rows)})
	}
	return s.writer.WriteSimpleCSV(
		filepath.Join(outDir, ManifestCSV),
		[]string{"part", "rows"},
		records,
	)
}
