package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// EmptyInput indicates the subject list had zero usable entries
	EmptyInput ErrorCode = "EMPTY_INPUT"
	// InputUnreadable indicates the subject list file could not be read
	InputUnreadable ErrorCode = "INPUT_UNREADABLE"
	// QueryFailed indicates the external git query failed or produced
	// output that could not be decoded
	QueryFailed ErrorCode = "QUERY_FAILED"
	// ConfigInvalid indicates malformed configuration (bad duration,
	// bad worker count, unreadable config file)
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// RepoUnavailable indicates the target path is not a usable git repository
	RepoUnavailable ErrorCode = "REPO_UNAVAILABLE"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// TraceError represents a fixtrace error with code, message, and suggestions
type TraceError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new TraceError
func New(code ErrorCode, message string, cause error, suggestedFixes []FixAction) *TraceError {
	return &TraceError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes,
	}
}

// Error implements the error interface
func (e *TraceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *TraceError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *TraceError) WithDetails(details interface{}) *TraceError {
	e.Details = details
	return e
}

// HasCode reports whether err is (or wraps) a TraceError with the given code
func HasCode(err error, code ErrorCode) bool {
	var te *TraceError
	if errors.As(err, &te) {
		return te.Code == code
	}
	return false
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	RepoUnavailable: {
		{
			Type:        RunCommand,
			Command:     "git -C <repo> rev-parse --git-dir",
			Safe:        true,
			Description: "Verify the path points at a git repository",
		},
	},
	QueryFailed: {
		{
			Type:        RunCommand,
			Command:     "fixtrace hunt --verbose",
			Safe:        true,
			Description: "Re-run with --verbose to see the failing git invocation",
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
