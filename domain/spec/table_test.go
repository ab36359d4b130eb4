package spec

import (
	"reflect"
	"testing"
)

func furnitureHeader() []string {
	return []string{"Product Name", "SKU", "Size", "Width", "Depth", "Height"}
}

func furnitureRows() []Row {
	return []Row{
		{
			"Product Name": "Mardi Marble Side Table",
			"SKU":          "SKU-20240501",
			"Size":         `24" x 12" x 30"`,
			"Width":        "24",
			"Depth":        "12",
			"Height":       "30",
		},
		{
			"Product Name": "Side Table",
			"SKU":          "SKU-2",
			"Size":         "",
			"Width":        "18.5",
			"Depth":        "18.5",
			"Height":       "22",
		},
		{
			// Decoration row: no name, must be dropped.
			"Product Name": "   ",
			"Width":        "1",
		},
	}
}

func TestBuildSpecTable(t *testing.T) {
	table := BuildSpecTable(furnitureRows(), furnitureHeader(), nil)

	if len(table) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(table))
	}

	first := table[0]
	if first.ProductSlug != "mardi-marble-side-table" {
		t.Errorf("slug = %q", first.ProductSlug)
	}
	if first.Size != `24" x 12" x 30"` {
		t.Errorf("size = %q", first.Size)
	}
	// Width/Depth/Height only: SKU, Size and Product Name are reserved
	// metadata columns, so 20240501 never leaks into the dimensions.
	if want := []float64{12, 24, 30}; !reflect.DeepEqual(first.ExpectedDimensions, want) {
		t.Errorf("dimensions = %v, want %v", first.ExpectedDimensions, want)
	}

	if table[1].ProductSlug != "side-table" {
		t.Errorf("second slug = %q", table[1].ProductSlug)
	}
	if want := []float64{18.5, 18.5, 22}; !reflect.DeepEqual(table[1].ExpectedDimensions, want) {
		t.Errorf("second dimensions = %v, want %v", table[1].ExpectedDimensions, want)
	}
}

func TestBuildSpecTableEmptyInput(t *testing.T) {
	if got := BuildSpecTable(nil, furnitureHeader(), nil); got != nil {
		t.Fatalf("expected nil table, got %v", got)
	}
}

func TestBuildSpecTableDeterministic(t *testing.T) {
	a := BuildSpecTable(furnitureRows(), furnitureHeader(), nil)
	b := BuildSpecTable(furnitureRows(), furnitureHeader(), nil)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("table build is not deterministic")
	}
}

func TestBuildSpecTableWithColumnRange(t *testing.T) {
	// D..F covers Width/Depth/Height explicitly; with a configured range the
	// reserved-substring heuristic is bypassed entirely.
	rng := &ColumnRange{Start: "D", End: "F"}
	table := BuildSpecTable(furnitureRows(), furnitureHeader(), rng)

	if want := []float64{12, 24, 30}; !reflect.DeepEqual(table[0].ExpectedDimensions, want) {
		t.Errorf("dimensions = %v, want %v", table[0].ExpectedDimensions, want)
	}
}

func TestBuildSpecTableRangeIncludingSKUFiltersImplausible(t *testing.T) {
	// Pull the SKU column into range: its digits parse but fall outside
	// (0, 2000), so they still never appear as dimensions.
	rng := &ColumnRange{Start: "B", End: "F"}
	table := BuildSpecTable(furnitureRows(), furnitureHeader(), rng)

	for _, d := range table[0].ExpectedDimensions {
		if d <= 0 || d >= 2000 {
			t.Fatalf("implausible dimension %v leaked into table", d)
		}
	}
}

func TestBuildSpecTableNameColumnLadder(t *testing.T) {
	header := []string{"Item Name", "Width"}
	rows := []Row{{"Item Name": "Oak Stool", "Width": "14"}}

	table := BuildSpecTable(rows, header, nil)
	if len(table) != 1 || table[0].ProductName != "Oak Stool" {
		t.Fatalf("ladder failed: %+v", table)
	}

	// Substring fallback: any header containing "name".
	header = []string{"Customer Name Ref", "Width"}
	rows = []Row{{"Customer Name Ref": "Pine Bench", "Width": "40"}}
	table = BuildSpecTable(rows, header, nil)
	if len(table) != 1 || table[0].ProductName != "Pine Bench" {
		t.Fatalf("substring fallback failed: %+v", table)
	}

	// No name-ish header at all: every row filtered out.
	header = []string{"Width", "Height"}
	rows = []Row{{"Width": "10", "Height": "20"}}
	if table = BuildSpecTable(rows, header, nil); len(table) != 0 {
		t.Fatalf("expected empty table, got %+v", table)
	}
}

func TestBuildSpecTableNumericCellValues(t *testing.T) {
	header := []string{"Name", "Width"}
	rows := []Row{{"Name": "Walnut Desk", "Width": 47.25}}

	table := BuildSpecTable(rows, header, nil)
	if want := []float64{47.25}; !reflect.DeepEqual(table[0].ExpectedDimensions, want) {
		t.Fatalf("dimensions = %v, want %v", table[0].ExpectedDimensions, want)
	}
}
