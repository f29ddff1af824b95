package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"taxicli/internal/dataset"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options, creating the
// destination directory as needed. Writing is all-or-nothing per file; a
// failure never rolls back files already written by the same run.
func (w *CSVWriter) WriteCSV(path string, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("path", path),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// WriteSimpleCSV writes a CSV file with headers and records
func (w *CSVWriter) WriteSimpleCSV(path string, headers []string, records [][]string) error {
	return w.WriteCSV(path, WriteOptions{Headers: headers, Records: records})
}

// Table is a named tabular artifact destined for <dir>/<Name>.csv.
type Table struct {
	Name    string
	Headers []string
	Records [][]string
}

// WriteTable writes a table into the given directory under its own name.
func (w *CSVWriter) WriteTable(dir string, t Table) error {
	return w.WriteSimpleCSV(filepath.Join(dir, t.Name+".csv"), t.Headers, t.Records)
}

// WriteDataset writes a dataset in its column order, formatting each cell
// with the shared value formatting rules. Null cells become empty fields.
func (w *CSVWriter) WriteDataset(path string, ds *dataset.Dataset) error {
	headers := ds.Columns()
	records := make([][]string, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		row := ds.Row(i)
		rec := make([]string, len(headers))
		for j, col := range headers {
			rec[j] = formatCell(row[col])
		}
		records[i] = rec
	}
	return w.WriteCSV(path, WriteOptions{Headers: headers, Records: records})
}

// WriteLines writes a plain text file, one line per entry, creating the
// destination directory as needed.
func (w *CSVWriter) WriteLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	for _, line := range lines {
		if _, err := fmt.Fprintln(file, line); err != nil {
			return fmt.Errorf("failed to write line: %w", err)
		}
	}
	return nil
}

// StreamWriter provides streaming CSV writing for large outputs such as
// dataset splits.
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
	rows   int
}

// CreateStreamWriter creates a new streaming CSV writer and writes the
// header immediately.
func (w *CSVWriter) CreateStreamWriter(path string, headers []string) (*StreamWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	writer := csv.NewWriter(file)
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}
	return &StreamWriter{file: file, writer: writer}, nil
}

// WriteRecord writes a single record
func (s *StreamWriter) WriteRecord(record []string) error {
	if err := s.writer.Write(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	s.rows++
	return nil
}

// Rows returns the number of data records written so far.
func (s *StreamWriter) Rows() int {
	return s.rows
}

// Close flushes and closes the underlying file
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return fmt.Errorf("failed to flush writer: %w", err)
	}
	return s.file.Close()
}
