package spec

import (
	"fmt"
	"sort"
	"strings"
)

// Row is one raw spreadsheet row keyed by header name. Cell values may be
// strings, numbers or nil depending on the reader that produced them.
type Row map[string]any

// ReferenceEntry is one authoritative product record with its expected
// dimension set. Entries are built once per table load and never mutated;
// a reconfiguration rebuilds the whole table.
type ReferenceEntry struct {
	ProductName        string    `json:"product_name"`
	ProductSlug        string    `json:"product_slug"`
	Size               string    `json:"size"`
	ExpectedDimensions []float64 `json:"expected_dimensions"`
	SourceRow          Row       `json:"-"`
}

// Dimension values outside this open interval are treated as non-dimensions
// (IDs, phone numbers, decoration) and dropped during table build.
const (
	minPlausibleDimension = 0.0
	maxPlausibleDimension = 2000.0
)

// Header keys containing one of these substrings are assumed to be metadata,
// not dimension columns, when no explicit column range is configured.
var reservedHeaderSubstrings = []string{"product", "name", "size", "id", "model", "row", "sku"}

// Name-column detection ladder, most specific first. The first pattern with a
// matching header wins.
var nameColumnExact = []string{"product name", "product", "model name", "model", "item name", "name"}

// BuildSpecTable converts raw spreadsheet rows into the normalized reference
// table. Rows whose product name (or its slug) comes out empty are dropped;
// ordering otherwise follows the input. Empty input yields an empty table,
// never an error.
func BuildSpecTable(rows []Row, header []string, rng *ColumnRange) []ReferenceEntry {
	if len(rows) == 0 {
		return nil
	}

	nameCol := detectNameColumn(header)
	sizeCol := detectSizeColumn(header)
	eligible := eligibleDimensionColumns(header, rng)

	var table []ReferenceEntry
	for _, row := range rows {
		name := strings.TrimSpace(cellString(row[nameCol]))
		slug := Slugify(name)
		if name == "" || slug == "" {
			continue
		}

		var dims []float64
		for _, col := range eligible {
			for _, n := range ExtractNumbers(row[col]) {
				if n > minPlausibleDimension && n < maxPlausibleDimension {
					dims = append(dims, n)
				}
			}
		}
		sort.Float64s(dims)

		size := ""
		if sizeCol != "" {
			size = strings.TrimSpace(cellString(row[sizeCol]))
		}

		table = append(table, ReferenceEntry{
			ProductName:        name,
			ProductSlug:        slug,
			Size:               size,
			ExpectedDimensions: dims,
			SourceRow:          row,
		})
	}
	return table
}

// detectNameColumn walks the exact-match ladder, then falls back to any
// header containing "name", then to the literal "Product Name" (which is
// simply absent from real data, so the rows get filtered out downstream).
func detectNameColumn(header []string) string {
	for _, want := range nameColumnExact {
		for _, key := range header {
			if strings.EqualFold(strings.TrimSpace(key), want) {
				return key
			}
		}
	}
	for _, key := range header {
		if strings.Contains(strings.ToLower(key), "name") {
			return key
		}
	}
	return "Product Name"
}

func detectSizeColumn(header []string) string {
	for _, key := range header {
		k := strings.ToLower(strings.TrimSpace(key))
		if k == "size" || k == "dimension" {
			return key
		}
	}
	return ""
}

// eligibleDimensionColumns decides which columns get scanned for numbers:
// the configured range when one exists, otherwise every non-metadata header.
func eligibleDimensionColumns(header []string, rng *ColumnRange) []string {
	if rng != nil {
		return SelectColumns(header, rng)
	}

	var out []string
	for _, key := range header {
		lower := strings.ToLower(key)
		reserved := false
		for _, sub := range reservedHeaderSubstrings {
			if strings.Contains(lower, sub) {
				reserved = true
				break
			}
		}
		if !reserved {
			out = append(out, key)
		}
	}
	return out
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
