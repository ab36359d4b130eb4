package spec

import (
	"math"
	"reflect"
	"testing"
)

func refEntry(dims ...float64) ReferenceEntry {
	return ReferenceEntry{ProductName: "Test", ProductSlug: "test", ExpectedDimensions: dims}
}

func TestValidatePerfect(t *testing.T) {
	out := Validate([]float64{24.1, 12}, refEntry(24, 12))

	if out.Status != StatusPerfect {
		t.Fatalf("status = %s", out.Status)
	}
	if len(out.MatchedPairs) != 2 {
		t.Fatalf("pairs = %+v", out.MatchedPairs)
	}
	// Expected values are processed ascending, so 12 pairs first.
	if out.MatchedPairs[0].Diff != 0 {
		t.Errorf("diff[0] = %v", out.MatchedPairs[0].Diff)
	}
	if math.Abs(out.MatchedPairs[1].Diff-0.1) > 1e-9 {
		t.Errorf("diff[1] = %v", out.MatchedPairs[1].Diff)
	}
}

func TestValidateExtra(t *testing.T) {
	out := Validate([]float64{24, 12, 99}, refEntry(24, 12))

	if out.Status != StatusExtra {
		t.Fatalf("status = %s", out.Status)
	}
	if !reflect.DeepEqual(out.UnmatchedDetected, []float64{99}) {
		t.Fatalf("unmatched detected = %v", out.UnmatchedDetected)
	}
}

func TestValidateMissing(t *testing.T) {
	out := Validate([]float64{24}, refEntry(24, 12))

	if out.Status != StatusMissing {
		t.Fatalf("status = %s", out.Status)
	}
	if !reflect.DeepEqual(out.UnmatchedExpected, []float64{12}) {
		t.Fatalf("unmatched expected = %v", out.UnmatchedExpected)
	}
}

func TestValidateMismatch(t *testing.T) {
	out := Validate([]float64{30, 12}, refEntry(24, 12))

	if out.Status != StatusMismatch {
		t.Fatalf("status = %s", out.Status)
	}
	if !reflect.DeepEqual(out.UnmatchedExpected, []float64{24}) {
		t.Fatalf("unmatched expected = %v", out.UnmatchedExpected)
	}
	if !reflect.DeepEqual(out.UnmatchedDetected, []float64{30}) {
		t.Fatalf("unmatched detected = %v", out.UnmatchedDetected)
	}
}

func TestValidateToleranceBoundary(t *testing.T) {
	if out := Validate([]float64{24.5}, refEntry(24)); out.Status != StatusPerfect {
		t.Fatalf("diff of exactly 0.5 should match, got %s", out.Status)
	}
	if out := Validate([]float64{24.50001}, refEntry(24)); out.Status != StatusMismatch {
		t.Fatalf("diff above 0.5 should not match, got %s", out.Status)
	}
}

func TestValidateOneToOneMatching(t *testing.T) {
	// A single detected 24 cannot satisfy both expected 24s.
	out := Validate([]float64{24}, refEntry(24, 24))

	if out.Status != StatusMissing {
		t.Fatalf("status = %s", out.Status)
	}
	if len(out.MatchedPairs) != 1 || len(out.UnmatchedExpected) != 1 {
		t.Fatalf("pairs=%v unmatched=%v", out.MatchedPairs, out.UnmatchedExpected)
	}
}

func TestValidateNearestWins(t *testing.T) {
	// Both 23.7 and 24.1 are within tolerance of 24; the nearer one is
	// claimed, the other surfaces as extra.
	out := Validate([]float64{23.7, 24.1}, refEntry(24))

	if out.Status != StatusExtra {
		t.Fatalf("status = %s", out.Status)
	}
	if out.MatchedPairs[0].Detected != 24.1 {
		t.Fatalf("claimed %v, wanted nearest 24.1", out.MatchedPairs[0].Detected)
	}
}

func TestValidateEmptyInputs(t *testing.T) {
	out := Validate(nil, refEntry())
	if out.Status != StatusPerfect {
		t.Fatalf("empty vs empty should be perfect, got %s", out.Status)
	}

	out = Validate(nil, refEntry(24))
	if out.Status != StatusMissing {
		t.Fatalf("status = %s", out.Status)
	}
}

func TestValidateDoesNotMutateInputs(t *testing.T) {
	detected := []float64{30, 12}
	entry := refEntry(24, 12)

	_ = Validate(detected, entry)

	if !reflect.DeepEqual(detected, []float64{30, 12}) {
		t.Fatalf("detected mutated: %v", detected)
	}
	if !reflect.DeepEqual(entry.ExpectedDimensions, []float64{24, 12}) {
		t.Fatalf("expected mutated: %v", entry.ExpectedDimensions)
	}
}

func TestNoMatchOutcome(t *testing.T) {
	out := NoMatchOutcome()
	if out.Status != StatusNoMatch || out.MatchedEntry != nil {
		t.Fatalf("outcome = %+v", out)
	}
}
