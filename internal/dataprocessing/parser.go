package dataprocessing

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"finmark/internal/errors"
)

// ParseFile reads a raw marketing report into a Table, classifying every
// cell on the way in. CSV is the common case; .xlsx is accepted because the
// report is produced from a spreadsheet and sometimes arrives unexported.
func ParseFile(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("input file does not exist", err).
				WithContext("path", path)
		}
		return nil, errors.NewStorageError("failed to stat input file", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return parseExcel(path)
	default:
		return parseCSV(path)
	}
}

// parseCSV reads a CSV report. Rows may be ragged: the reader accepts any
// field count and short rows are padded with empty cells during
// classification.
func parseCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open input file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		slog.Warn("input file is empty", slog.String("path", path))
		return NewTable(), nil
	}
	if err != nil {
		return nil, errors.NewParsingError("failed to read CSV header", err)
	}

	table := NewTable(trimHeader(header)...)
	for {
		raw, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParsingError("failed to read CSV row", err)
		}
		table.Rows = append(table.Rows, classifyRow(raw, len(table.Columns)))
	}

	slog.Debug("parsed CSV input",
		slog.String("path", path),
		slog.Int("columns", len(table.Columns)),
		slog.Int("rows", len(table.Rows)))

	return table, nil
}

// parseExcel reads the first sheet that contains data
func parseExcel(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError("failed to open Excel file", err)
	}
	defer f.Close()

	var rows [][]string
	var sheetName string
	for _, name := range f.GetSheetList() {
		testRows, testErr := f.GetRows(name)
		if testErr == nil && len(testRows) > 0 {
			rows = testRows
			sheetName = name
			break
		}
	}

	if sheetName == "" {
		slog.Warn("no sheet with data found", slog.String("path", path))
		return NewTable(), nil
	}

	slog.Debug("parsed Excel input",
		slog.String("path", path),
		slog.String("sheet", sheetName),
		slog.Int("rows", len(rows)))

	table := NewTable(trimHeader(rows[0])...)
	for _, raw := range rows[1:] {
		table.Rows = append(table.Rows, classifyRow(raw, len(table.Columns)))
	}
	return table, nil
}

// trimHeader normalizes header cells
func trimHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(h)
	}
	return out
}

// classifyRow classifies raw cells and pads short rows to the column count
func classifyRow(raw []string, width int) []Value {
	row := make([]Value, width)
	for i := range row {
		if i < len(raw) {
			row[i] = Classify(raw[i])
		} else {
			row[i] = Empty()
		}
	}
	return row
}
