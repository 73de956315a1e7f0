package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is checks. The concrete error types below match them.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("task not found")
	ErrPersistence = errors.New("persistence failed")
	ErrAmbiguousID = errors.New("ambiguous task id")
)

// ValidationError reports input that was rejected before any state changed
type ValidationError struct {
	Field  string // Which input was rejected (e.g., "text", "date")
	Value  string // The rejected value
	Reason string // Human-readable reason
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) succeed
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports an operation that referenced a missing task
type NotFoundError struct {
	ID string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %q not found", e.ID)
}

// Is makes errors.Is(err, ErrNotFound) succeed
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// PersistenceError reports a failure of the underlying storage
type PersistenceError struct {
	Op  string // "save" or "load"
	Err error
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s tasks: %v", e.Op, e.Err)
}

// Unwrap allows error unwrapping
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrPersistence) succeed
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// AmbiguousIDError reports an id prefix that matches more than one task
type AmbiguousIDError struct {
	Ref     string
	Matches []string
}

// Error implements the error interface
func (e *AmbiguousIDError) Error() string {
	return fmt.Sprintf("id %q is ambiguous, matches: %s", e.Ref, strings.Join(e.Matches, ", "))
}

// Is makes errors.Is(err, ErrAmbiguousID) succeed
func (e *AmbiguousIDError) Is(target error) bool {
	return target == ErrAmbiguousID
}
