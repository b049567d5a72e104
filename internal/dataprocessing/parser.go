package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"affrecon/pkg/contracts/domain"
)

// Sheet names the known export generations use for the data tab. Tried in
// order before falling back to the first sheet that holds anything.
var candidateSheets = []string{"Report", "report", "Export", "Data", "Sheet1"}

// ParseFile reads a report file and returns its raw records, dispatching on
// the file extension. Only .csv and .xlsx are accepted.
func ParseFile(path string) ([]domain.RawRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()
		return ParseCSV(f)
	case ".xlsx":
		return ParseWorkbook(path)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", filepath.Ext(path))
	}
}

// ParseCSV reads a header-row CSV into raw records. The first non-empty row
// is the header; every later row becomes one record keyed by header cell.
// Short rows are padded with empty cells, extra cells beyond the header are
// dropped, and fully empty rows are skipped.
func ParseCSV(r io.Reader) ([]domain.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // exports are ragged more often than not
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return rowsToRecords(rows), nil
}

// ParseWorkbook reads the data sheet of an xlsx export into raw records,
// using the same header-row semantics as ParseCSV.
func ParseWorkbook(path string) ([]domain.RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, sheetName, err := findDataSheet(f)
	if err != nil {
		return nil, err
	}

	slog.Debug("parsed workbook sheet",
		slog.String("path", path),
		slog.String("sheet_name", sheetName),
		slog.Int("total_rows", len(rows)))

	return rowsToRecords(rows), nil
}

// findDataSheet probes the candidate sheet names first, then falls back to
// the first sheet that contains anything at all.
func findDataSheet(f *excelize.File) ([][]string, string, error) {
	for _, name := range candidateSheets {
		if rows, err := f.GetRows(name); err == nil && len(rows) > 0 {
			return rows, name, nil
		}
	}
	for _, name := range f.GetSheetList() {
		if rows, err := f.GetRows(name); err == nil && len(rows) > 0 {
			return rows, name, nil
		}
	}
	return nil, "", fmt.Errorf("workbook has no non-empty sheet")
}

// rowsToRecords applies the header-row contract to a raw cell grid.
func rowsToRecords(rows [][]string) []domain.RawRecord {
	headerIdx := -1
	for i, row := range rows {
		if !rowEmpty(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return []domain.RawRecord{}
	}

	headers := make([]string, len(rows[headerIdx]))
	for i, cell := range rows[headerIdx] {
		headers[i] = strings.TrimSpace(cell)
	}

	records := make([]domain.RawRecord, 0, len(rows)-headerIdx-1)
	for _, row := range rows[headerIdx+1:] {
		if rowEmpty(row) {
			continue
		}
		record := make(domain.RawRecord, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(row) {
				record[header] = strings.TrimSpace(row[i])
			} else {
				record[header] = ""
			}
		}
		records = append(records, record)
	}

	return records
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
