package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := New(EmptyInput, "Subject list is empty", nil, nil)
		msg := err.Error()
		if !strings.Contains(msg, "EMPTY_INPUT") {
			t.Errorf("message should contain the code, got %q", msg)
		}
		if !strings.Contains(msg, "Subject list is empty") {
			t.Errorf("message should contain the text, got %q", msg)
		}
	})

	t.Run("with cause", func(t *testing.T) {
		cause := fmt.Errorf("exit status 128")
		err := New(QueryFailed, "Git command failed", cause, nil)
		msg := err.Error()
		if !strings.Contains(msg, "exit status 128") {
			t.Errorf("message should contain the cause, got %q", msg)
		}
	})
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := New(QueryFailed, "Git command failed", cause, nil)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestHasCode(t *testing.T) {
	err := New(EmptyInput, "Subject list is empty", nil, nil)

	if !HasCode(err, EmptyInput) {
		t.Error("HasCode should match the error's own code")
	}
	if HasCode(err, QueryFailed) {
		t.Error("HasCode should not match a different code")
	}
	if HasCode(fmt.Errorf("plain"), EmptyInput) {
		t.Error("HasCode should not match a plain error")
	}

	wrapped := fmt.Errorf("while loading: %w", err)
	if !HasCode(wrapped, EmptyInput) {
		t.Error("HasCode should see through wrapping")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(QueryFailed, "Git command failed", nil, nil).
		WithDetails(map[string]interface{}{"stderr": "fatal: bad revision"})

	details, ok := err.Details.(map[string]interface{})
	if !ok {
		t.Fatalf("Details has unexpected type %T", err.Details)
	}
	if details["stderr"] != "fatal: bad revision" {
		t.Errorf("details = %v", details)
	}
}

func TestGetSuggestedFixes(t *testing.T) {
	fixes := GetSuggestedFixes(RepoUnavailable)
	if len(fixes) == 0 {
		t.Fatal("RepoUnavailable should have suggested fixes")
	}
	if fixes[0].Type != RunCommand {
		t.Errorf("fix type = %q, want run-command", fixes[0].Type)
	}

	if GetSuggestedFixes(EmptyInput) != nil {
		t.Error("EmptyInput has no suggested fixes")
	}
}
