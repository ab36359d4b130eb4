package spec

import (
	"path/filepath"
	"sort"
	"strings"
)

// FindMatches returns every reference entry whose slug appears as a
// substring of the file name's slug, ranked most specific first: descending
// slug length, ties broken by ascending product name. Substring (not exact)
// containment is deliberate so file names carrying extra tokens (SKU,
// resolution suffix) still match. An empty result means no reference exists
// for this file; the caller decides what that means.
func FindMatches(fileName string, table []ReferenceEntry) []ReferenceEntry {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	fileSlug := Slugify(base)
	if fileSlug == "" {
		return nil
	}

	var matches []ReferenceEntry
	for _, entry := range table {
		if entry.ProductSlug == "" {
			continue
		}
		if strings.Contains(fileSlug, entry.ProductSlug) {
			matches = append(matches, entry)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		li, lj := len(matches[i].ProductSlug), len(matches[j].ProductSlug)
		if li != lj {
			return li > lj
		}
		return matches[i].ProductName < matches[j].ProductName
	})
	return matches
}

// FindBestMatch is the head-of-ranking convenience form of FindMatches.
func FindBestMatch(fileName string, table []ReferenceEntry) (ReferenceEntry, bool) {
	matches := FindMatches(fileName, table)
	if len(matches) == 0 {
		return ReferenceEntry{}, false
	}
	return matches[0], true
}
