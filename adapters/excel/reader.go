package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dimcheck/domain/spec"
	"dimcheck/ports"

	"github.com/xuri/excelize/v2"
)

// SheetReader reads reference spreadsheets from Excel or CSV files. Only the
// first sheet is consulted, and the first row is taken as the header.
type SheetReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewSheetReader creates a reader for the given file, choosing the decoder
// by extension.
func NewSheetReader(filePath string) *SheetReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &SheetReader{filePath: filePath, fileType: fileType}
}

// ReadSheet reads the reference file into header + row maps.
func (r *SheetReader) ReadSheet() (*ports.SheetData, error) {
	log.Printf("[SheetReader] Reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *SheetReader) readExcel() (*ports.SheetData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	log.Printf("[SheetReader] Sheet %q read in %.2fms (%d rows)",
		sheets[0], float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

func (r *SheetReader) readCSV() (*ports.SheetData, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	return r.processRows(rows)
}

// processRows converts raw string rows into header + row maps. An empty or
// header-only file yields an empty row set, not an error; the table builder
// handles that downstream.
func (r *SheetReader) processRows(rows [][]string) (*ports.SheetData, error) {
	if len(rows) == 0 {
		return &ports.SheetData{}, nil
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	var dataRows []spec.Row
	for i := 1; i < len(rows); i++ {
		rowData := make(spec.Row)
		for j, cell := range rows[i] {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	log.Printf("[SheetReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &ports.SheetData{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}
