package spec

import (
	"reflect"
	"testing"
)

func TestColumnIndexFromLetters(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"A", 0},
		{"B", 1},
		{"Z", 25},
		{"AA", 26},
		{"AB", 27},
		{"a", 0},
		{" c ", 2},
		{"", -1},
	}
	for _, c := range cases {
		if got := ColumnIndexFromLetters(c.in); got != c.want {
			t.Errorf("ColumnIndexFromLetters(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestSelectColumns(t *testing.T) {
	header := []string{"Product Name", "Width", "Depth", "Height", "SKU"}

	t.Run("nil range selects everything", func(t *testing.T) {
		got := SelectColumns(header, nil)
		if !reflect.DeepEqual(got, header) {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("inclusive span", func(t *testing.T) {
		got := SelectColumns(header, &ColumnRange{Start: "B", End: "D"})
		want := []string{"Width", "Depth", "Height"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("range wider than header is truncated", func(t *testing.T) {
		got := SelectColumns(header, &ColumnRange{Start: "D", End: "AZ"})
		want := []string{"Height", "SKU"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("inverted range selects nothing", func(t *testing.T) {
		if got := SelectColumns(header, &ColumnRange{Start: "D", End: "B"}); len(got) != 0 {
			t.Fatalf("got %v, want empty", got)
		}
	})

	t.Run("empty letters select nothing", func(t *testing.T) {
		if got := SelectColumns(header, &ColumnRange{}); len(got) != 0 {
			t.Fatalf("got %v, want empty", got)
		}
	})
}
