// Package sheet reads trade ledgers from CSV files and spreadsheet workbooks
// into raw rows.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/etnz/tradestats"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format of a ledger file.
type Format int

const (
	Unknown Format = iota
	CSV
	XLSX
)

func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case XLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// FormatOf guesses the format of a file from its name.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return CSV
	case ".xlsx", ".xlsm":
		return XLSX
	default:
		return Unknown
	}
}

// ReadFile reads the ledger at path.
func ReadFile(path string) ([]tradestats.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()
	return Read(path, f)
}

// Read reads a ledger whose format is guessed from name.
func Read(name string, r io.Reader) ([]tradestats.Row, error) {
	switch FormatOf(name) {
	case CSV:
		return ReadCSV(r)
	case XLSX:
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q want .csv or .xlsx", ErrUnsupportedFormat, filepath.Base(name))
	}
}

// ReadCSV reads a CSV ledger whose first record is the header. Every value
// is a string.
func ReadCSV(r io.Reader) ([]tradestats.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are common in exports
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	rows := make([]tradestats.Row, 0, len(records))
	for r := range table(records, func(v string) any { return v }) {
		rows = append(rows, r)
	}
	return rows, nil
}

// ReadXLSX reads the first sheet of a workbook whose first row is the
// header. Numeric cells, including dates stored as serial numbers, are
// float64; other cells are strings.
func ReadXLSX(r io.Reader) ([]tradestats.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("failed to read workbook: no sheet")
	}
	records, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	rows := make([]tradestats.Row, 0, len(records))
	for r := range table(records, cellValue) {
		rows = append(rows, r)
	}
	return rows, nil
}

func cellValue(v string) any {
	if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
		return f
	}
	return v
}

// table yields one row per record after the header.
func table(records [][]string, value func(string) any) iter.Seq[tradestats.Row] {
	return func(yield func(tradestats.Row) bool) {
		if len(records) == 0 {
			return
		}
		header := make([]string, len(records[0]))
		for i, h := range records[0] {
			header[i] = strings.TrimPrefix(h, "\ufeff")
		}
		for _, rec := range records[1:] {
			row := make(tradestats.Row, len(header))
			for i, v := range rec {
				if i >= len(header) || header[i] == "" {
					continue
				}
				row[header[i]] = value(v)
			}
			if !yield(row) {
				return
			}
		}
	}
}
