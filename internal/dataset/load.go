package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"taxicli/internal/errors"
)

// Load reads a tabular file into a dataset. CSV is the primary format; an
// .xlsx file is read from its first sheet with the first row as header.
// A path that does not exist fails with a MissingInputError before any
// content is touched. Content is not validated here: malformed values
// surface as parse degradations in later stages.
func Load(path string) (*Dataset, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NewMissingInput(path)
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadXLSX(path)
	}
	return loadCSV(path)
}

func loadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to read header of %s", path), err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to read rows of %s", path), err)
	}

	return fromRecords(header, records), nil
}

func loadXLSX(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError(fmt.Sprintf("no sheets in %s", path), nil)
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to read sheet %q of %s", sheets[0], path), err)
	}
	if len(records) == 0 {
		return nil, errors.NewParsingError(fmt.Sprintf("no header row in %s", path), nil)
	}

	return fromRecords(records[0], records[1:]), nil
}

// fromRecords builds rows keyed by header name. When the raw header carries
// a duplicate column name, the leftmost occurrence supplies the value; the
// schema normalizer later drops the duplicate from the column list.
func fromRecords(header []string, records [][]string) *Dataset {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row := make(Row, len(header))
		for i, col := range header {
			if i >= len(rec) {
				break
			}
			if _, seen := row[col]; seen {
				continue
			}
			row[col] = rec[i]
		}
		rows = append(rows, row)
	}
	return FromRows(header, rows)
}
