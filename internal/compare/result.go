package compare

import (
	"encoding/json"

	"cqlconf/internal/elm"
)

// Result holds the full comparison outcome for one file pair. It is
// built once per pair and not modified afterwards; the orchestrator
// persists it as comparison.json and keeps it for aggregation.
type Result struct {
	TotalDifferences int          `json:"total_differences"`
	Differences      []Difference `json:"differences"`
	ReferenceFile    string       `json:"reference_file"`
	CandidateFile    string       `json:"candidate_file"`
}

// Passed reports whether the two documents were structurally identical
// after normalization.
func (r *Result) Passed() bool {
	return r.TotalDifferences == 0
}

// ToJSON serializes the result with indentation.
func (r *Result) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Compare loads the two translator outputs, normalizes both, and diffs
// them starting at the library root. A document without a library key
// compares as an empty object, so a translator that emitted nothing
// useful still produces a readable report instead of an error.
func Compare(referenceFile, candidateFile string) (*Result, error) {
	refDoc, err := elm.DecodeFile(referenceFile)
	if err != nil {
		return nil, err
	}
	candDoc, err := elm.DecodeFile(candidateFile)
	if err != nil {
		return nil, err
	}
	return CompareDocuments(refDoc, candDoc, referenceFile, candidateFile), nil
}

// CompareDocuments diffs two already-loaded documents.
func CompareDocuments(refDoc, candDoc elm.Value, referenceFile, candidateFile string) *Result {
	refNorm := elm.Normalize(refDoc)
	candNorm := elm.Normalize(candDoc)

	differences := []Difference{}
	Diff("library", libraryRoot(refNorm), libraryRoot(candNorm), &differences)

	return &Result{
		TotalDifferences: len(differences),
		Differences:      differences,
		ReferenceFile:    referenceFile,
		CandidateFile:    candidateFile,
	}
}

func libraryRoot(doc elm.Value) elm.Value {
	if lib, ok := doc.Field("library"); ok {
		return lib
	}
	return elm.EmptyObject()
}
