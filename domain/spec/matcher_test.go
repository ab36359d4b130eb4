package spec

import "testing"

func entries(slugs ...string) []ReferenceEntry {
	out := make([]ReferenceEntry, 0, len(slugs))
	for _, s := range slugs {
		out = append(out, ReferenceEntry{ProductName: s, ProductSlug: Slugify(s)})
	}
	return out
}

func TestFindMatchesSpecificityOrdering(t *testing.T) {
	table := entries("Side Table", "Round Side Table")

	got := FindMatches("round-side-table-24in.jpg", table)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].ProductSlug != "round-side-table" || got[1].ProductSlug != "side-table" {
		t.Fatalf("ordering wrong: %q then %q", got[0].ProductSlug, got[1].ProductSlug)
	}
}

func TestFindMatchesSubstringContainment(t *testing.T) {
	table := entries("Mardi Marble Side Table")

	// Extra tokens around the product slug still match.
	if got := FindMatches("IMG_mardi_marble_side_table_SKU123.png", table); len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got := FindMatches("oak-stool.png", table); len(got) != 0 {
		t.Fatalf("expected no match, got %d", len(got))
	}
}

func TestFindMatchesEmptyFileSlug(t *testing.T) {
	table := entries("Side Table")
	if got := FindMatches("...", table); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := FindMatches("", table); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestFindMatchesTieBreakByName(t *testing.T) {
	// Equal-length slugs: ascending product name decides.
	table := []ReferenceEntry{
		{ProductName: "zeta table", ProductSlug: "table-one"},
		{ProductName: "alpha table", ProductSlug: "table-two"},
	}
	got := FindMatches("big-table-one-table-two.jpg", table)
	if len(got) != 2 || got[0].ProductName != "alpha table" {
		t.Fatalf("tie-break wrong: %+v", got)
	}
}

func TestFindBestMatch(t *testing.T) {
	table := entries("Side Table", "Round Side Table")

	best, ok := FindBestMatch("round-side-table.jpg", table)
	if !ok || best.ProductSlug != "round-side-table" {
		t.Fatalf("best = %+v ok=%v", best, ok)
	}

	if _, ok := FindBestMatch("lamp.jpg", table); ok {
		t.Fatal("expected no best match")
	}
}
