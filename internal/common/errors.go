// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Store errors.
	ErrNotFound      = errors.New("not found")
	ErrInvalidAmount = errors.New("amount must be a positive number of cents")

	// Persistence errors.
	ErrCorruptData = errors.New("persisted data corrupted")

	// Import errors.
	ErrSchemaMismatch  = errors.New("schema version mismatch")
	ErrInvalidStrategy = errors.New("invalid import strategy")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// SchemaError reports an import payload whose schema version does not match
// the running instance. It wraps ErrSchemaMismatch so callers can test with
// errors.Is while still showing both versions.
type SchemaError struct {
	Got  int
	Want int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema version mismatch: payload has %d, this instance requires %d", e.Got, e.Want)
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaMismatch
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
