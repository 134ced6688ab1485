package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := New(TestCaseNotFound, "test case directory not found", nil)
		want := "[TESTCASE_NOT_FOUND] test case directory not found"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("with cause", func(t *testing.T) {
		cause := stderrors.New("exit status 3")
		err := New(TranslationFailed, "reference translator failed on add.cql", cause)
		got := err.Error()
		if !strings.HasPrefix(got, "[TRANSLATION_FAILED]") || !strings.Contains(got, "exit status 3") {
			t.Errorf("Error() = %q", got)
		}
	})
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := New(InternalError, "wrapper", cause)
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should reach the cause through Unwrap")
	}
	if New(InternalError, "no cause", nil).Unwrap() != nil {
		t.Error("Unwrap without cause should be nil")
	}
}

func TestIsInvocationFailure(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want bool
	}{
		{TranslationFailed, true},
		{ArtifactMissing, true},
		{TranslatorUnavailable, false},
		{TestCaseNotFound, false},
		{SuiteNotFound, false},
		{ConfigInvalid, false},
		{InternalError, false},
	}
	for _, tt := range tests {
		err := New(tt.code, "x", nil)
		if got := err.IsInvocationFailure(); got != tt.want {
			t.Errorf("IsInvocationFailure(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestWithDetails(t *testing.T) {
	err := New(TranslationFailed, "candidate failed", nil).WithDetails("stack trace here")
	if err.Details != "stack trace here" {
		t.Errorf("Details = %v", err.Details)
	}
}

func TestSuggestedFixes(t *testing.T) {
	err := New(ConfigInvalid, "bad config", nil)
	if len(err.SuggestedFixes) == 0 {
		t.Fatal("expected suggested fixes for CONFIG_INVALID")
	}
	if err.SuggestedFixes[0].Command != "cqlconf config init" {
		t.Errorf("fix command = %q", err.SuggestedFixes[0].Command)
	}

	if fixes := GetSuggestedFixes(InternalError); fixes != nil {
		t.Errorf("unexpected fixes for INTERNAL_ERROR: %v", fixes)
	}
}
