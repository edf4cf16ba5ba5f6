package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"shelterpulse/pkg/contracts/domain"
)

const sheetName = "Animals"

// XLSXWriter exports cleaned records as an Excel workbook.
type XLSXWriter struct {
	logger *slog.Logger
}

// NewXLSXWriter creates a new XLSX writer.
func NewXLSXWriter(logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{logger: logger}
}

// build renders the records into a single-sheet workbook with a bold,
// frozen header row.
func (xw *XLSXWriter) build(records []domain.AnimalRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := Columns()
	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		endCol, _ := excelize.ColumnNumberToName(len(headers))
		f.SetCellStyle(sheetName, "A1", endCol+"1", headerStyle)
	}
	f.SetPanes(sheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	})

	for i := range records {
		cells := Row(&records[i])
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell for row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheetName, axis, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	return f, nil
}

// Write streams the workbook to w.
func (xw *XLSXWriter) Write(w io.Writer, records []domain.AnimalRecord) error {
	f, err := xw.build(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteFile writes the workbook to disk, creating the parent directory
// when needed.
func (xw *XLSXWriter) WriteFile(path string, records []domain.AnimalRecord) error {
	xw.logger.Info("writing XLSX export",
		slog.String("path", path),
		slog.Int("record_count", len(records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := xw.build(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
