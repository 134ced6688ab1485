package harness

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
)

// Status is the terminal state of one file in a batch. Exactly one of
// the three states applies to every processed file.
type Status string

const (
	// StatusFailed means a translator invocation failed or produced no
	// artifact; no comparison was attempted.
	StatusFailed Status = "failed"
	// StatusPassed means both outputs compared with zero differences.
	StatusPassed Status = "passed"
	// StatusFailedWithDiffs means the comparison found divergences.
	StatusFailedWithDiffs Status = "failed_with_diffs"
)

// FileOutcome records the terminal state of one CQL file.
type FileOutcome struct {
	File             string `json:"file"`
	Test             string `json:"test,omitempty"`
	Session          string `json:"session,omitempty"`
	Status           Status `json:"status"`
	TotalDifferences int    `json:"total_differences"`
	Error            string `json:"error,omitempty"`
}

// RunSummary aggregates the outcomes of one batch. It is built
// incrementally by the single orchestrating goroutine and finalized
// when the batch completes.
type RunSummary struct {
	RunID       string `json:"run_id"`
	Mode        string `json:"mode"`
	ModelFilter string `json:"model_filter,omitempty"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at,omitempty"`

	Total               int `json:"total"`
	TranslationFailures int `json:"translation_failures"`
	Passed              int `json:"passed"`
	Failed              int `json:"failed"`

	TranslationFailureFiles []FileOutcome `json:"translation_failure_files"`
	FailedFiles             []FileOutcome `json:"failed_files"`
	PassedFiles             []FileOutcome `json:"passed_files"`
}

// NewRunSummary starts an empty summary for the given batch mode.
func NewRunSummary(mode string) *RunSummary {
	return &RunSummary{
		RunID:                   uuid.NewString(),
		Mode:                    mode,
		StartedAt:               time.Now().UTC().Format(time.RFC3339),
		TranslationFailureFiles: []FileOutcome{},
		FailedFiles:             []FileOutcome{},
		PassedFiles:             []FileOutcome{},
	}
}

// Record folds one file outcome into the summary.
func (s *RunSummary) Record(o FileOutcome) {
	s.Total++
	switch o.Status {
	case StatusFailed:
		s.TranslationFailures++
		s.TranslationFailureFiles = append(s.TranslationFailureFiles, o)
	case StatusPassed:
		s.Passed++
		s.PassedFiles = append(s.PassedFiles, o)
	case StatusFailedWithDiffs:
		s.Failed++
		s.FailedFiles = append(s.FailedFiles, o)
	}
}

// Finalize stamps the completion time.
func (s *RunSummary) Finalize() {
	s.CompletedAt = time.Now().UTC().Format(time.RFC3339)
}

// Compared returns the number of files that reached structural
// comparison, whatever its result.
func (s *RunSummary) Compared() int {
	return s.Passed + s.Failed
}

// ToJSON serializes the summary with indentation.
func (s *RunSummary) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Save writes the summary document to path.
func (s *RunSummary) Save(path string) error {
	data, err := s.ToJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
