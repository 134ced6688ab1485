// Package compare implements the structural differencing of two
// normalized ELM documents. Divergences are classified into a stable
// taxonomy so regressions can be triaged across large batches.
package compare

import (
	"fmt"
	"sort"

	"cqlconf/internal/elm"
)

// DiffKind classifies one detected divergence.
type DiffKind string

const (
	// TypeMismatch means the two sides hold different dynamic types at
	// the same path. Comparison does not descend below a type mismatch.
	TypeMismatch DiffKind = "type_mismatch"
	// MissingInCandidate means a key exists only on the reference side.
	MissingInCandidate DiffKind = "missing_in_candidate"
	// ExtraInCandidate means a key exists only on the candidate side.
	ExtraInCandidate DiffKind = "extra_in_candidate"
	// ArrayLengthMismatch means two arrays differ in length. The shared
	// prefix is still compared element-wise.
	ArrayLengthMismatch DiffKind = "array_length_mismatch"
	// ValueMismatch means two scalars of the same type differ by value.
	ValueMismatch DiffKind = "value_mismatch"
)

// Difference is one classified divergence between the reference and
// candidate documents.
type Difference struct {
	Path string   `json:"path"`
	Kind DiffKind `json:"kind"`

	// Reference and Candidate carry the diverging values where the kind
	// has them: both for type_mismatch (as "<Type>: <json>" strings) and
	// value_mismatch, one side for missing/extra records.
	Reference interface{} `json:"reference,omitempty"`
	Candidate interface{} `json:"candidate,omitempty"`

	// Lengths are set only for array_length_mismatch.
	ReferenceLength *int `json:"reference_length,omitempty"`
	CandidateLength *int `json:"candidate_length,omitempty"`
}

// Diff compares reference and candidate at path and appends one record
// per divergence to out. The accumulator is owned by the top-level
// caller; no reference to it is retained after the call returns.
//
// Records are emitted in a deterministic depth-first order: within an
// object, missing keys first, then extra keys, then recursion into
// common keys, each group in sorted key order.
func Diff(path string, reference, candidate elm.Value, out *[]Difference) {
	if reference.Type != candidate.Type {
		*out = append(*out, Difference{
			Path:      path,
			Kind:      TypeMismatch,
			Reference: reference.TypedRepr(),
			Candidate: candidate.TypedRepr(),
		})
		return
	}

	switch reference.Type {
	case elm.ObjectType:
		diffObjects(path, reference, candidate, out)
	case elm.ArrayType:
		diffArrays(path, reference, candidate, out)
	default:
		if !elm.ScalarEqual(reference, candidate) {
			*out = append(*out, Difference{
				Path:      path,
				Kind:      ValueMismatch,
				Reference: reference.Interface(),
				Candidate: candidate.Interface(),
			})
		}
	}
}

func diffObjects(path string, reference, candidate elm.Value, out *[]Difference) {
	refKeys := sortedKeys(reference.Object)
	candKeys := sortedKeys(candidate.Object)

	// Keys only in the reference. An absent empty array is equivalent to
	// a present one; optional-field conventions differ between
	// implementations and flagging those would drown real divergences.
	for _, k := range refKeys {
		if _, ok := candidate.Object[k]; ok {
			continue
		}
		v := reference.Object[k]
		if isEmptyArray(v) {
			continue
		}
		*out = append(*out, Difference{
			Path:      path + "." + k,
			Kind:      MissingInCandidate,
			Reference: v.Interface(),
		})
	}

	// Keys only in the candidate, with the same empty-array exemption.
	for _, k := range candKeys {
		if _, ok := reference.Object[k]; ok {
			continue
		}
		v := candidate.Object[k]
		if isEmptyArray(v) {
			continue
		}
		*out = append(*out, Difference{
			Path:      path + "." + k,
			Kind:      ExtraInCandidate,
			Candidate: v.Interface(),
		})
	}

	// Common keys, recursed in sorted order so record order is stable
	// across runs.
	for _, k := range refKeys {
		cv, ok := candidate.Object[k]
		if !ok {
			continue
		}
		Diff(path+"."+k, reference.Object[k], cv, out)
	}
}

func diffArrays(path string, reference, candidate elm.Value, out *[]Difference) {
	refLen := len(reference.Array)
	candLen := len(candidate.Array)
	if refLen != candLen {
		rl, cl := refLen, candLen
		*out = append(*out, Difference{
			Path:            path,
			Kind:            ArrayLengthMismatch,
			ReferenceLength: &rl,
			CandidateLength: &cl,
		})
	}

	// Compare the shared prefix either way; a partial comparison is far
	// more useful for triage than stopping at the length record.
	n := refLen
	if candLen < n {
		n = candLen
	}
	for i := 0; i < n; i++ {
		Diff(fmt.Sprintf("%s[%d]", path, i), reference.Array[i], candidate.Array[i], out)
	}
}

func isEmptyArray(v elm.Value) bool {
	return v.Type == elm.ArrayType && len(v.Array) == 0
}

func sortedKeys(m map[string]elm.Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
