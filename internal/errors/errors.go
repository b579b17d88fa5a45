// Package errors provides sentinel errors, structured error details and exit
// codes for the rtb CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// DetailError captures structured error information with actionable guidance.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file or directory involved (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewTemplateMissingError reports a template root that does not exist.
func NewTemplateMissingError(root string) error {
	return &DetailError{
		Type:     "template missing",
		Message:  "template directory not found",
		Location: root,
		Hint:     "Reinstall rtb or point --template-dir (env: RTB_TEMPLATE_DIR) at a template tree.",
		Cause:    ErrTemplateMissing,
	}
}

// NewTargetExistsError reports a generation target that is already present.
func NewTargetExistsError(dir string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  fmt.Sprintf("directory already exists: %s", dir),
		Location: dir,
		Hint:     "Choose a different project name or remove the existing directory.",
		Cause:    ErrTargetExists,
	}
}

// NewPrerequisiteError reports a missing or unusable deployment tool.
func NewPrerequisiteError(message, hint string, cause error) error {
	return &DetailError{
		Type:    "prerequisite not met",
		Message: message,
		Hint:    hint,
		Cause:   errors.Join(ErrPrerequisite, cause),
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
