package spec

import "strings"

// ColumnRange selects a contiguous span of spreadsheet columns by letter,
// e.g. {Start: "C", End: "F"}. An inverted or empty range selects nothing;
// a range wider than the header row is silently truncated.
type ColumnRange struct {
	Start string `json:"start_column"`
	End   string `json:"end_column"`
}

// ColumnIndexFromLetters converts a spreadsheet column reference to a 0-based
// index: "A"=0, "Z"=25, "AA"=26. Letters act as base-26 digits valued 1-26.
// Returns -1 for input with no letters.
func ColumnIndexFromLetters(letters string) int {
	idx := 0
	for _, r := range strings.ToUpper(strings.TrimSpace(letters)) {
		if r < 'A' || r > 'Z' {
			continue
		}
		idx = idx*26 + int(r-'A'+1)
	}
	return idx - 1
}

// SelectColumns returns the header keys whose positional index falls within
// the range, inclusive on both ends. A nil range selects every header key.
func SelectColumns(header []string, rng *ColumnRange) []string {
	if rng == nil {
		out := make([]string, len(header))
		copy(out, header)
		return out
	}

	start := ColumnIndexFromLetters(rng.Start)
	end := ColumnIndexFromLetters(rng.End)

	var out []string
	for i, key := range header {
		if i >= start && i <= end && start >= 0 {
			out = append(out, key)
		}
	}
	return out
}
