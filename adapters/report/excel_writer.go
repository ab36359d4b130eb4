package report

import (
	"fmt"
	"log"
	"strings"

	"dimcheck/ports"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook exports a batch as an xlsx workbook with one row per
// (item, outcome) pairing, so multi-spec products appear once per matched
// reference entry.
func WriteWorkbook(path string, batch *ports.BatchRecord, items []ports.ItemRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "QC Results"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"File", "Status", "Product", "Size", "Expected", "Detected", "Missing", "Extra", "Error"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	rowIdx := 2
	for _, item := range items {
		if len(item.Outcomes) == 0 {
			writeRow(f, sheet, rowIdx, []any{item.FileName, string(item.Status), "", "", "", joinFloats(item.Detected), "", "", item.Error})
			rowIdx++
			continue
		}
		for _, out := range item.Outcomes {
			product, size, expected := "", "", ""
			if out.MatchedEntry != nil {
				product = out.MatchedEntry.ProductName
				size = out.MatchedEntry.Size
				expected = joinFloats(out.MatchedEntry.ExpectedDimensions)
			}
			writeRow(f, sheet, rowIdx, []any{
				item.FileName,
				string(out.Status),
				product,
				size,
				expected,
				joinFloats(item.Detected),
				joinFloats(out.UnmatchedExpected),
				joinFloats(out.UnmatchedDetected),
				item.Error,
			})
			rowIdx++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	log.Printf("[Report] Wrote workbook %s (%d rows)", path, rowIdx-2)
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func joinFloats(vals []float64) string {
	if len(vals) == 0 {
		return ""
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return strings.Join(parts, ", ")
}
