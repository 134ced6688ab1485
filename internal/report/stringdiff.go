package report

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"cqlconf/internal/compare"
)

// stringDiffMinLen is the length either side must reach before a value
// mismatch gets an inline character diff. Short strings are readable
// side by side; long ones (operator names, qualified identifiers,
// serialized expressions) are not.
const stringDiffMinLen = 24

// inlineStringDiff renders a character-level diff for long string value
// mismatches, marking deletions as [-x] and insertions as [+y].
func inlineStringDiff(d compare.Difference) (string, bool) {
	if d.Kind != compare.ValueMismatch {
		return "", false
	}
	ref, okRef := d.Reference.(string)
	cand, okCand := d.Candidate.(string)
	if !okRef || !okCand {
		return "", false
	}
	if len(ref) < stringDiffMinLen && len(cand) < stringDiffMinLen {
		return "", false
	}

	dmp := diffpatch.New()
	diffs := dmp.DiffMain(ref, cand, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, seg := range diffs {
		switch seg.Type {
		case diffpatch.DiffDelete:
			sb.WriteString("[-" + seg.Text + "]")
		case diffpatch.DiffInsert:
			sb.WriteString("[+" + seg.Text + "]")
		case diffpatch.DiffEqual:
			sb.WriteString(seg.Text)
		}
	}
	return sb.String(), true
}
