package spec

import (
	"reflect"
	"testing"
)

func TestExtractNumbers(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want []float64
	}{
		{"nil", nil, nil},
		{"empty string", "", nil},
		{"whitespace", "   ", nil},
		{"native float", 24.5, []float64{24.5}},
		{"native int", 12, []float64{12}},
		{"plain number string", "24", []float64{24}},
		{"decimal", "24.75", []float64{24.75}},
		{"bare fraction", ".5", []float64{0.5}},
		{"negative", "-3.5", []float64{-3.5}},
		{"dims with units", `24" W x 12.5" D x 30" H`, []float64{24, 12.5, 30}},
		{"sku digits come out raw", "SKU-20240501", []float64{-20240501}},
		{"no digits", "tbd", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ExtractNumbers(c.in)
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("ExtractNumbers(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}
