// Package report renders comparison results for humans: a grouped,
// truncated summary per file pair plus machine-readable counts.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"cqlconf/internal/compare"
)

// groupEntryCap limits how many entries each kind group renders. Files
// where two implementations disagree structurally can produce hundreds
// of records; the cap keeps summaries scannable.
const groupEntryCap = 10

// AggregateCounts returns the number of differences per kind.
func AggregateCounts(differences []compare.Difference) map[compare.DiffKind]int {
	counts := make(map[compare.DiffKind]int)
	for _, d := range differences {
		counts[d.Kind]++
	}
	return counts
}

// Summarize renders a plain-text report for one comparison. Output is
// deterministic: groups are sorted by kind name regardless of the order
// differences were detected in.
func Summarize(res *compare.Result) string {
	var sb strings.Builder
	writeSummary(&sb, res, plainStyles())
	return sb.String()
}

func writeSummary(sb *strings.Builder, res *compare.Result, st styles) {
	fmt.Fprintf(sb, "Total differences: %d\n\n", res.TotalDifferences)

	if res.TotalDifferences == 0 {
		sb.WriteString(st.success("✅ Outputs match!") + "\n")
		return
	}

	groups := make(map[compare.DiffKind][]compare.Difference)
	for _, d := range res.Differences {
		groups[d.Kind] = append(groups[d.Kind], d)
	}

	kinds := make([]string, 0, len(groups))
	for k := range groups {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		diffs := groups[compare.DiffKind(kind)]
		sb.WriteString(st.header(fmt.Sprintf("## %s (%d occurrences)", kind, len(diffs))) + "\n")

		shown := diffs
		if len(shown) > groupEntryCap {
			shown = shown[:groupEntryCap]
		}
		for _, d := range shown {
			sb.WriteString("  - " + d.Path + "\n")
			switch d.Kind {
			case compare.ArrayLengthMismatch:
				fmt.Fprintf(sb, "    Reference: %d elements\n", *d.ReferenceLength)
				fmt.Fprintf(sb, "    Candidate: %d elements\n", *d.CandidateLength)
			case compare.TypeMismatch:
				// Type mismatches carry preformatted "<Type>: <json>" strings.
				fmt.Fprintf(sb, "    Reference: %v\n", d.Reference)
				fmt.Fprintf(sb, "    Candidate: %v\n", d.Candidate)
			default:
				if d.Reference != nil {
					sb.WriteString("    Reference: " + renderValue(d.Reference) + "\n")
				}
				if d.Candidate != nil {
					sb.WriteString("    Candidate: " + renderValue(d.Candidate) + "\n")
				}
				if inline, ok := inlineStringDiff(d); ok {
					sb.WriteString("    Diff:      " + inline + "\n")
				}
			}
		}
		if len(diffs) > groupEntryCap {
			fmt.Fprintf(sb, "  ... and %d more\n", len(diffs)-groupEntryCap)
		}
		sb.WriteString("\n")
	}
}

// renderValue produces a compact one-line JSON rendering of a recorded
// value.
func renderValue(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("<unrenderable: %v>", err)
	}
	return string(data)
}
