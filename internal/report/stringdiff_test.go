package report

import (
	"strings"
	"testing"

	"cqlconf/internal/compare"
)

func TestInlineStringDiffLongStrings(t *testing.T) {
	d := compare.Difference{
		Kind:      compare.ValueMismatch,
		Reference: "FHIRHelpers.ToQuantity(value)",
		Candidate: "FHIRHelpers.ToDecimal(value)",
	}
	got, ok := inlineStringDiff(d)
	if !ok {
		t.Fatal("expected an inline diff for long strings")
	}
	if !strings.Contains(got, "[-") || !strings.Contains(got, "[+") {
		t.Errorf("diff markers missing: %q", got)
	}
	if !strings.Contains(got, "FHIRHelpers.To") {
		t.Errorf("common prefix should survive: %q", got)
	}
}

func TestInlineStringDiffSkipsShortStrings(t *testing.T) {
	d := compare.Difference{
		Kind:      compare.ValueMismatch,
		Reference: "A",
		Candidate: "B",
	}
	if _, ok := inlineStringDiff(d); ok {
		t.Error("short strings should not get an inline diff")
	}
}

func TestInlineStringDiffSkipsNonStrings(t *testing.T) {
	d := compare.Difference{
		Kind:      compare.ValueMismatch,
		Reference: float64(1),
		Candidate: float64(2),
	}
	if _, ok := inlineStringDiff(d); ok {
		t.Error("non-string values should not get an inline diff")
	}
}

func TestInlineStringDiffSkipsOtherKinds(t *testing.T) {
	d := compare.Difference{
		Kind:      compare.MissingInCandidate,
		Reference: strings.Repeat("x", 100),
	}
	if _, ok := inlineStringDiff(d); ok {
		t.Error("only value mismatches get inline diffs")
	}
}
