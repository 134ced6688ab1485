package harness

import (
	"fmt"
	"strings"
)

// ModelFilter selects corpus files by their external-model declaration.
// The check inspects raw CQL text, not parsed structure; the harness
// never parses CQL.
type ModelFilter string

const (
	// ModelAny disables filtering.
	ModelAny ModelFilter = ""
	// ModelFHIR keeps files declaring "using FHIR".
	ModelFHIR ModelFilter = "fhir"
	// ModelQDM keeps files declaring "using QDM".
	ModelQDM ModelFilter = "qdm"
	// ModelNone keeps files with no using declaration at all.
	ModelNone ModelFilter = "none"
)

// ParseModelFilter validates a filter name from the CLI.
func ParseModelFilter(s string) (ModelFilter, error) {
	switch ModelFilter(s) {
	case ModelAny, ModelFHIR, ModelQDM, ModelNone:
		return ModelFilter(s), nil
	}
	return ModelAny, fmt.Errorf("invalid model filter %q (want fhir, qdm, or none)", s)
}

// Matches reports whether a file with the given raw content passes the
// filter.
func (f ModelFilter) Matches(content []byte) bool {
	text := string(content)
	switch f {
	case ModelAny:
		return true
	case ModelFHIR:
		return strings.Contains(text, "using FHIR")
	case ModelQDM:
		return strings.Contains(text, "using QDM")
	case ModelNone:
		return !strings.Contains(text, "using ")
	}
	return false
}
