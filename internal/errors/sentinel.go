package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a malformed project name or flag value.
	ErrValidation = errors.New("validation error")

	// ErrTemplateMissing indicates the template root could not be found.
	ErrTemplateMissing = errors.New("template missing")

	// ErrTargetExists indicates the generation target directory already exists.
	ErrTargetExists = errors.New("target exists")

	// ErrPrerequisite indicates a required tool is missing or unauthenticated.
	ErrPrerequisite = errors.New("prerequisite not met")

	// ErrCommand indicates an external command failed.
	ErrCommand = errors.New("command failed")

	// ErrNotFound indicates a file or remote resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrUnrecognizedFormat indicates a file or command output could not be parsed.
	ErrUnrecognizedFormat = errors.New("unrecognized format")
)
