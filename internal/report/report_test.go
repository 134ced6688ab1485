package report

import (
	"fmt"
	"strings"
	"testing"

	"cqlconf/internal/compare"
)

func TestSummarizeZeroDifferences(t *testing.T) {
	res := &compare.Result{TotalDifferences: 0, Differences: []compare.Difference{}}
	got := Summarize(res)

	if !strings.Contains(got, "Total differences: 0") {
		t.Errorf("missing total line:\n%s", got)
	}
	if !strings.Contains(got, "Outputs match!") {
		t.Errorf("missing success message:\n%s", got)
	}
	if strings.Contains(got, "##") {
		t.Errorf("success report should have no groups:\n%s", got)
	}
}

func TestSummarizeGroupsSortedByKind(t *testing.T) {
	res := &compare.Result{
		TotalDifferences: 3,
		Differences: []compare.Difference{
			{Path: "library.a", Kind: compare.ValueMismatch, Reference: "x", Candidate: "y"},
			{Path: "library.b", Kind: compare.ExtraInCandidate, Candidate: float64(1)},
			{Path: "library.c", Kind: compare.MissingInCandidate, Reference: float64(2)},
		},
	}
	got := Summarize(res)

	extraIdx := strings.Index(got, "## extra_in_candidate (1 occurrences)")
	missingIdx := strings.Index(got, "## missing_in_candidate (1 occurrences)")
	valueIdx := strings.Index(got, "## value_mismatch (1 occurrences)")
	if extraIdx < 0 || missingIdx < 0 || valueIdx < 0 {
		t.Fatalf("missing group headers:\n%s", got)
	}
	if !(extraIdx < missingIdx && missingIdx < valueIdx) {
		t.Errorf("groups not sorted by kind name:\n%s", got)
	}
}

func TestSummarizeCapsEntriesPerGroup(t *testing.T) {
	var diffs []compare.Difference
	for i := 0; i < 25; i++ {
		diffs = append(diffs, compare.Difference{
			Path:      fmt.Sprintf("library.s[%d]", i),
			Kind:      compare.ValueMismatch,
			Reference: "a",
			Candidate: "b",
		})
	}
	res := &compare.Result{TotalDifferences: len(diffs), Differences: diffs}
	got := Summarize(res)

	if !strings.Contains(got, "## value_mismatch (25 occurrences)") {
		t.Errorf("missing group header:\n%s", got)
	}
	if !strings.Contains(got, "... and 15 more") {
		t.Errorf("missing elision marker:\n%s", got)
	}
	if shown := strings.Count(got, "  - library.s["); shown != 10 {
		t.Errorf("rendered %d entries, want 10", shown)
	}
}

func TestSummarizeValueLines(t *testing.T) {
	res := &compare.Result{
		TotalDifferences: 2,
		Differences: []compare.Difference{
			{Path: "library.n", Kind: compare.ValueMismatch, Reference: "A", Candidate: "B"},
			{
				Path:      "library.t",
				Kind:      compare.TypeMismatch,
				Reference: `Object: {"b":1}`,
				Candidate: `Array: [1]`,
			},
		},
	}
	got := Summarize(res)

	if !strings.Contains(got, `    Reference: "A"`) {
		t.Errorf("value mismatch should render JSON values:\n%s", got)
	}
	if !strings.Contains(got, `    Reference: Object: {"b":1}`) {
		t.Errorf("type mismatch should render typed reprs unquoted:\n%s", got)
	}
}

func TestSummarizeArrayLengths(t *testing.T) {
	rl, cl := 3, 2
	res := &compare.Result{
		TotalDifferences: 1,
		Differences: []compare.Difference{
			{Path: "library.a", Kind: compare.ArrayLengthMismatch, ReferenceLength: &rl, CandidateLength: &cl},
		},
	}
	got := Summarize(res)

	if !strings.Contains(got, "Reference: 3 elements") || !strings.Contains(got, "Candidate: 2 elements") {
		t.Errorf("length record not rendered:\n%s", got)
	}
}

func TestAggregateCounts(t *testing.T) {
	diffs := []compare.Difference{
		{Kind: compare.ValueMismatch},
		{Kind: compare.ValueMismatch},
		{Kind: compare.TypeMismatch},
	}
	counts := AggregateCounts(diffs)

	if counts[compare.ValueMismatch] != 2 {
		t.Errorf("value_mismatch count = %d, want 2", counts[compare.ValueMismatch])
	}
	if counts[compare.TypeMismatch] != 1 {
		t.Errorf("type_mismatch count = %d, want 1", counts[compare.TypeMismatch])
	}
	if len(counts) != 2 {
		t.Errorf("unexpected kinds in counts: %v", counts)
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	res := &compare.Result{
		TotalDifferences: 4,
		Differences: []compare.Difference{
			{Path: "library.d", Kind: compare.ValueMismatch, Reference: "1", Candidate: "2"},
			{Path: "library.a", Kind: compare.ExtraInCandidate, Candidate: "x"},
			{Path: "library.c", Kind: compare.MissingInCandidate, Reference: "y"},
			{Path: "library.b", Kind: compare.ValueMismatch, Reference: "3", Candidate: "4"},
		},
	}
	first := Summarize(res)
	for i := 0; i < 5; i++ {
		if again := Summarize(res); again != first {
			t.Fatal("summary output not deterministic")
		}
	}
}
