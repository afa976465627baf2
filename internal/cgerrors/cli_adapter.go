package cgerrors

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// CLIAdapter handles error presentation and exit code determination for the
// composegen CLI.
type CLIAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIAdapter creates a new CLI error adapter.
func NewCLIAdapter(verbose bool, logger *slog.Logger) *CLIAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIAdapter{verbose: verbose, logger: logger}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var ce *Error
	if !errors.As(err, &ce) {
		return 1
	}
	switch ce.Category {
	case CategoryValidation:
		return 2
	case CategoryConfig:
		return 7
	case CategorySource:
		return 8
	case CategoryParse, CategoryGenerate:
		return 11
	case CategoryStorage:
		return 12
	case CategoryInternal:
		return 10
	default:
		return 1
	}
}

// FormatError formats an error for user-facing display.
func (a *CLIAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	var ce *Error
	if !errors.As(err, &ce) {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return ce.Error()
	}
	switch ce.Category {
	case CategoryConfig, CategoryValidation:
		return ce.Message
	default:
		return fmt.Sprintf("%s: %s", ce.Category, ce.Message)
	}
}

// HandleError logs, prints and exits with the mapped code. No-op on nil.
func (a *CLIAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	a.logger.Debug("command failed", "error", err)
	fmt.Fprintf(os.Stderr, "%s\n", a.FormatError(err))
	os.Exit(a.ExitCodeFor(err))
}
