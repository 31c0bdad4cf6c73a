package errorwrapper

import (
	"errors"
	"fmt"
)

// Common error types used across the application
var (
	// ErrInvalidConfiguration indicates configuration issues
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrRepositoryUnreadable indicates the repository could not be opened
	ErrRepositoryUnreadable = errors.New("repository unreadable")
	// ErrObjectUnreadable indicates a single git object could not be read
	ErrObjectUnreadable = errors.New("object unreadable")
	// ErrBudgetExhausted indicates a scan budget was reached
	ErrBudgetExhausted = errors.New("scan budget exhausted")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return fmt.Errorf("%s: <nil>", message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// RuleError represents a malformed detector rule. Rule errors are fatal and
// are surfaced at startup, before any worker runs.
type RuleError struct {
	RuleName string
	Pattern  string
	Wrapped  error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule '%s': cannot compile pattern '%s': %v", e.RuleName, e.Pattern, e.Wrapped)
}

func (e *RuleError) Unwrap() error {
	return e.Wrapped
}

// NewRuleError creates a new rule error
func NewRuleError(ruleName, pattern string, wrapped error) *RuleError {
	return &RuleError{
		RuleName: ruleName,
		Pattern:  pattern,
		Wrapped:  wrapped,
	}
}
