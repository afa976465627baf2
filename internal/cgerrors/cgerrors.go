// Package cgerrors provides a lightweight structured error type for
// category-based classification in the CLI.
package cgerrors

import "fmt"

// Category classifies an error for exit-code mapping and display.
type Category string

const (
	// User-facing configuration and input errors.
	CategoryConfig     Category = "config"
	CategoryValidation Category = "validation"

	// Markdown parsing and rendering errors.
	CategoryParse    Category = "parse"
	CategoryGenerate Category = "generate"

	// External collaborators.
	CategorySource  Category = "source"
	CategoryStorage Category = "storage"

	// Everything else.
	CategoryInternal Category = "internal"
)

// Error is a structured error with category and cause.
type Error struct {
	Category Category
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Unwrap exposes the cause for errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// New creates a new categorized error.
func New(category Category, message string) *Error {
	return &Error{Category: category, Message: message}
}

// Newf creates a new categorized error with a formatted message.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{Category: category, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a categorized error wrapping an existing one.
func Wrap(err error, category Category, message string) *Error {
	return &Error{Category: category, Message: message, Cause: err}
}
