package compare

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestCompareEndToEnd(t *testing.T) {
	dir := t.TempDir()
	ref := writeDoc(t, dir, "q-reference.json", `{"library":{"statements":[{"name":"A"}]}}`)
	cand := writeDoc(t, dir, "q-candidate.json", `{"library":{"statements":[{"name":"B"}]}}`)

	res, err := Compare(ref, cand)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if res.TotalDifferences != 1 {
		t.Fatalf("TotalDifferences = %d, want 1", res.TotalDifferences)
	}
	d := res.Differences[0]
	if d.Path != "library.statements[0].name" {
		t.Errorf("path = %s, want library.statements[0].name", d.Path)
	}
	if d.Kind != ValueMismatch {
		t.Errorf("kind = %s, want %s", d.Kind, ValueMismatch)
	}
	if d.Reference != "A" || d.Candidate != "B" {
		t.Errorf("values = %v / %v, want A / B", d.Reference, d.Candidate)
	}
	if res.ReferenceFile != ref || res.CandidateFile != cand {
		t.Errorf("source files not recorded: %s / %s", res.ReferenceFile, res.CandidateFile)
	}
	if res.Passed() {
		t.Error("Passed() should be false with differences")
	}
}

func TestCompareNormalizesBeforeDiffing(t *testing.T) {
	dir := t.TempDir()
	ref := writeDoc(t, dir, "r.json", `{"library":{"translatorVersion":"3.2.0","x":1}}`)
	cand := writeDoc(t, dir, "c.json", `{"library":{"translatorVersion":"0.1.0","x":1}}`)

	res, err := Compare(ref, cand)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if !res.Passed() {
		t.Errorf("blocked keys should not diverge, got %+v", res.Differences)
	}
}

func TestCompareMissingLibraryRoot(t *testing.T) {
	dir := t.TempDir()
	ref := writeDoc(t, dir, "r.json", `{"library":{"x":1}}`)
	cand := writeDoc(t, dir, "c.json", `{}`)

	res, err := Compare(ref, cand)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if res.TotalDifferences != 1 {
		t.Fatalf("expected 1 difference, got %d", res.TotalDifferences)
	}
	if res.Differences[0].Kind != MissingInCandidate {
		t.Errorf("kind = %s, want %s", res.Differences[0].Kind, MissingInCandidate)
	}
}

func TestCompareBadJSON(t *testing.T) {
	dir := t.TempDir()
	ref := writeDoc(t, dir, "r.json", `{"library":{}}`)
	cand := writeDoc(t, dir, "c.json", `not json`)

	if _, err := Compare(ref, cand); err == nil {
		t.Error("expected error for malformed candidate document")
	}
}

func TestResultJSONShape(t *testing.T) {
	dir := t.TempDir()
	ref := writeDoc(t, dir, "r.json", `{"library":{"a":[1,2,3]}}`)
	cand := writeDoc(t, dir, "c.json", `{"library":{"a":[1]}}`)

	res, err := Compare(ref, cand)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	data, err := res.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("result JSON does not parse: %v", err)
	}
	if decoded["total_differences"].(float64) != 1 {
		t.Errorf("total_differences = %v, want 1", decoded["total_differences"])
	}
	diffs := decoded["differences"].([]interface{})
	first := diffs[0].(map[string]interface{})
	if first["kind"] != string(ArrayLengthMismatch) {
		t.Errorf("kind = %v, want %s", first["kind"], ArrayLengthMismatch)
	}
	if first["reference_length"].(float64) != 3 {
		t.Errorf("reference_length = %v, want 3", first["reference_length"])
	}
}
