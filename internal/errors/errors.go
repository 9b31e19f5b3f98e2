// Package errors provides the error kinds reported by the stamp CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure kinds of a run.
var (
	// ErrTemplateNotFound indicates the requested template is not in the registry.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrFilesystem indicates a directory could not be read or a file could not be written.
	ErrFilesystem = errors.New("filesystem error")

	// ErrInput indicates the interactive input stream was closed or unreadable.
	ErrInput = errors.New("input error")

	// ErrRender indicates a malformed template or a reference to an unset variable.
	ErrRender = errors.New("render error")

	// ErrArgument indicates a malformed command-line argument.
	ErrArgument = errors.New("invalid argument")
)

// Exit codes returned by the stamp binary.
const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitArgumentError = 2
	ExitRenderError   = 3
	ExitInputError    = 4
	ExitNotFound      = 5
	ExitFilesystem    = 6
)

// DetailError captures structured error information.
type DetailError struct {
	// Kind is one of the sentinel errors above (required).
	Kind error

	// Message is the specific description (required).
	Message string

	// Location is the template file or directory involved (optional).
	Location string

	// Hint provides actionable guidance (optional).
	Hint string

	// Err is the underlying cause (optional).
	Err error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	if e.Location != "" {
		b.WriteString("\n  Location: ")
		b.WriteString(e.Location)
	}

	if e.Hint != "" {
		b.WriteString("\n  Hint: ")
		b.WriteString(e.Hint)
	}

	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *DetailError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewNotFoundError reports a template name absent from the registry.
func NewNotFoundError(name, hint string) error {
	return &DetailError{
		Kind:    ErrTemplateNotFound,
		Message: fmt.Sprintf("template %s not found", name),
		Hint:    hint,
	}
}

// NewFilesystemError reports an I/O failure on path.
func NewFilesystemError(message, path string, cause error) error {
	return &DetailError{
		Kind:     ErrFilesystem,
		Message:  message,
		Location: path,
		Err:      cause,
	}
}

// NewInputError reports a failure reading interactive input.
func NewInputError(message string, cause error) error {
	return &DetailError{
		Kind:    ErrInput,
		Message: message,
		Err:     cause,
	}
}

// NewRenderError reports a template that failed to parse or render.
// file identifies the template file involved.
func NewRenderError(message, file string, cause error) error {
	return &DetailError{
		Kind:     ErrRender,
		Message:  message,
		Location: file,
		Err:      cause,
	}
}

// NewArgumentError reports a malformed command-line argument.
func NewArgumentError(message, hint string) error {
	return &DetailError{
		Kind:    ErrArgument,
		Message: message,
		Hint:    hint,
	}
}

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is set once the error has been shown to the user.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFromError determines the exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrArgument):
		return ExitArgumentError
	case errors.Is(err, ErrRender):
		return ExitRenderError
	case errors.Is(err, ErrInput):
		return ExitInputError
	case errors.Is(err, ErrTemplateNotFound):
		return ExitNotFound
	case errors.Is(err, ErrFilesystem):
		return ExitFilesystem
	default:
		return ExitGeneralError
	}
}

