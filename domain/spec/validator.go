package spec

import (
	"math"
	"sort"
)

// Status classifies the reconciliation of detected against expected
// dimensions.
type Status string

const (
	// StatusPerfect: every expected value matched and nothing detected was
	// left over.
	StatusPerfect Status = "perfect"
	// StatusMissing: some expected values had no detected counterpart.
	StatusMissing Status = "missing"
	// StatusExtra: detected values remained after all expected values
	// matched.
	StatusExtra Status = "extra"
	// StatusMismatch: both missing expected values and leftover detected
	// values.
	StatusMismatch Status = "mismatch"
	// StatusNoMatch: no reference entry existed for the file. Assigned by
	// the caller, never by Validate.
	StatusNoMatch Status = "no_match"
)

// Tolerance is the maximum absolute difference for a detected value to count
// as equal to an expected value. Inclusive: a difference of exactly 0.5
// still matches. Detected values come from vision extraction and carry
// measurement noise, so literal equality is unusable.
const Tolerance = 0.5

// MatchedPair records one expected value reconciled with one detected value.
type MatchedPair struct {
	Expected float64 `json:"expected"`
	Detected float64 `json:"detected"`
	Diff     float64 `json:"diff"`
}

// ValidationOutcome is the verdict for one (detected set, reference entry)
// pairing. Built fresh per validation, never mutated after.
type ValidationOutcome struct {
	Status            Status          `json:"status"`
	MatchedEntry      *ReferenceEntry `json:"matched_entry,omitempty"`
	MatchedPairs      []MatchedPair   `json:"matched_pairs"`
	UnmatchedExpected []float64       `json:"unmatched_expected"`
	UnmatchedDetected []float64       `json:"unmatched_detected"`
}

// NoMatchOutcome is what a caller records when the matcher found zero
// candidates for a file.
func NoMatchOutcome() ValidationOutcome {
	return ValidationOutcome{Status: StatusNoMatch}
}

// Validate reconciles detected measurements against one reference entry
// using greedy nearest-match under Tolerance. Matching is one-to-one: each
// detected value can satisfy at most one expected value and is removed from
// the pool once claimed, so a single detected number never double-counts
// against two expected dimensions.
func Validate(detected []float64, entry ReferenceEntry) ValidationOutcome {
	pool := make([]float64, len(detected))
	copy(pool, detected)
	sort.Float64s(pool)

	expected := make([]float64, len(entry.ExpectedDimensions))
	copy(expected, entry.ExpectedDimensions)
	sort.Float64s(expected)

	e := entry
	out := ValidationOutcome{MatchedEntry: &e}

	for _, want := range expected {
		best := -1
		bestDiff := math.Inf(1)
		for i, got := range pool {
			diff := math.Abs(want - got)
			if diff <= Tolerance && diff < bestDiff {
				best = i
				bestDiff = diff
			}
		}
		if best < 0 {
			out.UnmatchedExpected = append(out.UnmatchedExpected, want)
			continue
		}
		out.MatchedPairs = append(out.MatchedPairs, MatchedPair{
			Expected: want,
			Detected: pool[best],
			Diff:     bestDiff,
		})
		pool = append(pool[:best], pool[best+1:]...)
	}

	out.UnmatchedDetected = pool
	out.Status = classify(out.UnmatchedExpected, out.UnmatchedDetected)
	return out
}

func classify(unmatchedExpected, unmatchedDetected []float64) Status {
	switch {
	case len(unmatchedExpected) == 0 && len(unmatchedDetected) == 0:
		return StatusPerfect
	case len(unmatchedExpected) > 0 && len(unmatchedDetected) > 0:
		return StatusMismatch
	case len(unmatchedExpected) > 0:
		return StatusMissing
	default:
		return StatusExtra
	}
}
