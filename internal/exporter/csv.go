package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CSVWriter writes export CSVs.
type CSVWriter struct {
	// BOMPrefix prepends a UTF-8 BOM so Excel recognizes the encoding.
	BOMPrefix bool
}

// NewCSVWriter creates a CSV writer with Excel-friendly defaults.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{BOMPrefix: true}
}

// WriteHeadline writes the headline sequence as a two-column CSV.
func (w *CSVWriter) WriteHeadline(out io.Writer, metrics []Metric) error {
	if w.BOMPrefix {
		if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)
	defer writer.Flush()

	if err := writer.Write([]string{"metric", "value"}); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for _, m := range metrics {
		if err := writer.Write([]string{m.Label, m.Value}); err != nil {
			return fmt.Errorf("failed to write record %q: %w", m.Label, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteHeadlineFile writes the headline CSV to a file, creating parent
// directories as needed.
func (w *CSVWriter) WriteHeadlineFile(path string, metrics []Metric) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return w.WriteHeadline(file, metrics)
}
