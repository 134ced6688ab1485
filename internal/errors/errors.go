// Package errors defines stable error codes for all harness failure
// modes, so batch summaries and operators can tell an environment
// problem from a genuine translator regression.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// TranslatorUnavailable indicates a translator CLI is not installed or not executable
	TranslatorUnavailable ErrorCode = "TRANSLATOR_UNAVAILABLE"
	// TranslationFailed indicates a translator process exited with nonzero status
	TranslationFailed ErrorCode = "TRANSLATION_FAILED"
	// ArtifactMissing indicates a translator exited cleanly but produced no output document
	ArtifactMissing ErrorCode = "ARTIFACT_MISSING"
	// TestCaseNotFound indicates a requested test-case directory does not exist
	TestCaseNotFound ErrorCode = "TESTCASE_NOT_FOUND"
	// SuiteNotFound indicates a requested suite or session root does not exist
	SuiteNotFound ErrorCode = "SUITE_NOT_FOUND"
	// ConfigInvalid indicates the configuration file is malformed or inconsistent
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Command     string `json:"command,omitempty"`
	Safe        bool   `json:"safe,omitempty"`
	Description string `json:"description,omitempty"`
}

// ConformanceError represents a harness error with code, message, and suggestions
type ConformanceError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new ConformanceError
func New(code ErrorCode, message string, cause error) *ConformanceError {
	return &ConformanceError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *ConformanceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ConformanceError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *ConformanceError) WithDetails(details interface{}) *ConformanceError {
	e.Details = details
	return e
}

// IsInvocationFailure reports whether the code marks a per-file
// translator failure. Those are recorded in the run summary and never
// abort the batch; everything else is fatal to the invocation path.
func (e *ConformanceError) IsInvocationFailure() bool {
	switch e.Code {
	case TranslationFailed, ArtifactMissing:
		return true
	default:
		return false
	}
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	TranslatorUnavailable: {
		{
			Command:     "cqlconf config show",
			Safe:        true,
			Description: "Check configured translator paths",
		},
	},
	SuiteNotFound: {
		{
			Command:     "cqlconf config show",
			Safe:        true,
			Description: "Check the suites manifest and suite roots",
		},
	},
	ConfigInvalid: {
		{
			Command:     "cqlconf config init",
			Safe:        false,
			Description: "Regenerate the default configuration",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
