package model

import (
	"errors"
	"fmt"
)

// ErrorKind represents the categories of failures surfaced to the user
type ErrorKind int

const (
	// ErrInvalidInput means a malformed or empty URL was rejected before any work started
	ErrInvalidInput ErrorKind = iota

	// ErrExtraction means the backend could not resolve or download the content
	ErrExtraction

	// ErrNetwork means a thumbnail or playlist fetch failed
	ErrNetwork

	// ErrPersistence means the settings file could not be written
	ErrPersistence

	// ErrUnexpected is the catch-all for everything else
	ErrUnexpected
)

// String returns the string representation of the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidInput:
		return "invalid_input"
	case ErrExtraction:
		return "extraction"
	case ErrNetwork:
		return "network"
	case ErrPersistence:
		return "persistence"
	default:
		return "unexpected"
	}
}

// AppError is a structured error carrying a kind, a user-presentable
// message, and an optional cause.
type AppError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates an AppError without a cause
func NewAppError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// WrapError creates an AppError wrapping a cause
func WrapError(kind ErrorKind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the ErrorKind from an error chain, defaulting to
// ErrUnexpected for errors that are not AppErrors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ErrUnexpected
}
