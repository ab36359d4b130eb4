package ports

import "dimcheck/domain/spec"

// SheetData is the parsed form of a reference spreadsheet: the literal
// header row in column order plus one key->value map per data row. First
// sheet, single header row.
type SheetData struct {
	Headers []string
	Rows    []spec.Row
}

// SheetSource yields parsed spreadsheet rows. Implementations own all file
// and format concerns; decode failures surface here and never inside the
// matching engine.
type SheetSource interface {
	ReadSheet() (*SheetData, error)
}
