package spec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Matches signed or unsigned decimal numerals: optional minus, optional
// integer part, optional fraction. At least one digit either side of the dot.
var numberPattern = regexp.MustCompile(`-?(?:\d+(?:\.\d+)?|\.\d+)`)

// ExtractNumbers pulls every plausible numeric value out of a raw cell.
// Already-numeric values pass through as a single-element slice; anything
// else is stringified and scanned. Unparseable candidates are dropped, never
// fatal. Nil and empty input yield an empty slice.
func ExtractNumbers(cell any) []float64 {
	switch v := cell.(type) {
	case nil:
		return nil
	case float64:
		return []float64{v}
	case float32:
		return []float64{float64(v)}
	case int:
		return []float64{float64(v)}
	case int64:
		return []float64{float64(v)}
	}

	text := strings.TrimSpace(fmt.Sprint(cell))
	if text == "" {
		return nil
	}

	var out []float64
	for _, tok := range numberPattern.FindAllString(text, -1) {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			continue
		}
		out = append(out, f)
	}
	return out
}
