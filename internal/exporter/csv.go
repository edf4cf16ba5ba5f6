package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"shelterpulse/pkg/contracts/domain"
)

// CSVWriter exports cleaned records as CSV.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// Write streams the records to w in canonical column order.
func (cw *CSVWriter) Write(w io.Writer, records []domain.AnimalRecord, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(Columns()); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i := range records {
		if err := writer.Write(Row(&records[i])); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile writes the records to a CSV file, creating the parent
// directory when needed. Files get a BOM so Excel reads them as UTF-8.
func (cw *CSVWriter) WriteFile(path string, records []domain.AnimalRecord) error {
	cw.logger.Info("writing CSV export",
		slog.String("path", path),
		slog.Int("record_count", len(records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := cw.Write(file, records, WriteOptions{BOMPrefix: true}); err != nil {
		return err
	}
	return file.Close()
}
