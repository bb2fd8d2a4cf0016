package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when an entity does not exist
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// ErrSessionNotFound is returned for unknown or expired editor sessions
type ErrSessionNotFound struct {
	SessionID string
}

func (e *ErrSessionNotFound) Error() string {
	return "editor session not found: " + e.SessionID
}

// ErrEntryNotFound is returned by a DesignStore when a key is absent
type ErrEntryNotFound struct {
	Key string
}

func (e *ErrEntryNotFound) Error() string {
	return "design store entry not found: " + e.Key
}

// ErrRateLimited is returned when a session exceeds the allowed rate of an action
type ErrRateLimited struct {
	Action     string
	RetryAfter time.Duration
}

func (e *ErrRateLimited) Error() string {
	return fmt.Sprintf("too many %s requests, retry in %s", e.Action, e.RetryAfter.Round(time.Second))
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// IsNotFound reports whether err is one of the not found errors
func IsNotFound(err error) bool {
	var notFound *ErrNotFound
	var session *ErrSessionNotFound
	var entry *ErrEntryNotFound
	return errors.As(err, &notFound) || errors.As(err, &session) || errors.As(err, &entry)
}

// IsValidation reports whether err wraps a ValidationError
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

// IsRateLimited reports whether err wraps an ErrRateLimited
func IsRateLimited(err error) bool {
	var limited *ErrRateLimited
	return errors.As(err, &limited)
}
