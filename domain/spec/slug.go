package spec

import (
	"regexp"
	"strings"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a free-text label into its canonical comparable form:
// lower-cased, every run of non-alphanumeric characters collapsed to a single
// hyphen, leading/trailing hyphens stripped. Total over all inputs; slugs are
// the sole basis for matching, so this must stay deterministic and
// locale-insensitive.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = nonSlugRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
