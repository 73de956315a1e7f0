package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/nanotasks/types"
)

// CLIError represents a user-friendly CLI error with context and suggestions
type CLIError struct {
	Operation   string   // The operation that failed (e.g., "add", "edit", "delete")
	Cause       string   // The underlying cause (e.g., "task not found")
	Details     string   // Additional technical details
	Suggestions []string // Helpful suggestions for the user
	Underlying  error    // Original error for debugging
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("Failed to %s", e.Operation))
	} else {
		msg.WriteString("Operation failed")
	}

	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}

	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewValidationError creates an error for validation failures
func NewValidationError(operation, cause string, underlying error, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// NewNotFoundError creates an error for a task reference that matched nothing
func NewNotFoundError(operation, ref string, underlying error) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("task %q not found", ref),
		Suggestions: []string{CommonSuggestions.CheckID},
		Underlying:  underlying,
	}
}

// NewConfigError creates an error for configuration issues
func NewConfigError(operation, issue string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("configuration error: %s", issue),
		Suggestions: suggestions,
	}
}

// NewStoreError creates an error for storage failures
func NewStoreError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "storage operation failed"
	details := ""

	if underlying != nil {
		details = underlying.Error()

		// Provide more user-friendly descriptions for common errors
		errStr := strings.ToLower(underlying.Error())
		switch {
		case strings.Contains(errStr, "permission denied"):
			cause = "insufficient permissions to access the task file"
		case strings.Contains(errStr, "failed to acquire lock"):
			cause = "tasks are currently locked by another process"
		case strings.Contains(errStr, "connection refused"), strings.Contains(errStr, "failed to reach"):
			cause = "database is not reachable"
		case strings.Contains(errStr, "no space left"), strings.Contains(errStr, "quota"):
			cause = "storage is full"
		}
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     details,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// WrapError converts a domain error into a CLIError with context
func WrapError(operation string, err error, suggestions ...string) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Operation == "" {
			cliErr.Operation = operation
		}
		return cliErr
	}

	var notFound *types.NotFoundError
	if errors.As(err, &notFound) {
		return NewNotFoundError(operation, notFound.ID, err)
	}

	var ambiguous *types.AmbiguousIDError
	if errors.As(err, &ambiguous) {
		return &CLIError{
			Operation:   operation,
			Cause:       fmt.Sprintf("id %q matches %d tasks", ambiguous.Ref, len(ambiguous.Matches)),
			Suggestions: []string{"Type more characters of the id"},
			Underlying:  err,
		}
	}

	var invalid *types.ValidationError
	if errors.As(err, &invalid) {
		return NewValidationError(operation, invalid.Error(), err, CommonSuggestions.RunHelp)
	}

	if errors.Is(err, types.ErrPersistence) {
		suggestions = append(suggestions, CommonSuggestions.CheckPerms, "Nothing was changed; retry once storage is available")
	}
	return NewStoreError(operation, err, suggestions...)
}

// Common error messages and suggestions
var (
	CommonSuggestions = struct {
		CheckID     string
		CheckConfig string
		RunHelp     string
		CheckPerms  string
		TryDryRun   string
	}{
		CheckID:     "Verify the task ID exists (try 'tasks list' first)",
		CheckConfig: "Check your configuration file or NANOTASKS_* environment variables",
		RunHelp:     "Run command with --help for usage information",
		CheckPerms:  "Check file permissions and directory access",
		TryDryRun:   "Use --dry-run to preview the import",
	}
)
