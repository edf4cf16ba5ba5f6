package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// RawTable is the untyped tabular form of the source CSV. Headers keep the
// order of the source file; every row has exactly len(Headers) cells.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// ColumnIndex returns the position of a header, or -1 when absent.
func (t *RawTable) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, header). Missing columns read as "".
func (t *RawTable) Cell(row int, name string) string {
	idx := t.ColumnIndex(name)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][idx]
}

// SetCell writes the value at (row, header). Writes to unknown columns are
// ignored so stages can treat optional columns uniformly.
func (t *RawTable) SetCell(row int, name, value string) {
	idx := t.ColumnIndex(name)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return
	}
	t.Rows[row][idx] = value
}

// Clone returns a deep copy. Stages operate on copies so the input table is
// never mutated in place.
func (t *RawTable) Clone() *RawTable {
	headers := make([]string, len(t.Headers))
	copy(headers, t.Headers)

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = make([]string, len(row))
		copy(rows[i], row)
	}

	return &RawTable{Headers: headers, Rows: rows}
}

// LoadCSV reads the raw shelter export into a RawTable. Short rows are
// padded and long rows truncated to the header width; the file itself is
// read exactly once.
func LoadCSV(path string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	table, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	slog.Debug("loaded raw table",
		slog.String("path", path),
		slog.Int("columns", len(table.Headers)),
		slog.Int("rows", len(table.Rows)))

	return table, nil
}

// ReadCSV reads CSV content from any reader into a RawTable.
func ReadCSV(r io.Reader) (*RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, pad below

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	table := &RawTable{Headers: header}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(table.Rows)+2, err)
		}

		switch {
		case len(row) < len(header):
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		case len(row) > len(header):
			row = row[:len(header)]
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
