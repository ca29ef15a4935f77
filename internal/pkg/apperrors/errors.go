package apperrors

import "errors"

// Base errors. Every failure the API can recover from wraps one of these
// five, which the error middleware maps to a client-facing status.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("conflict")
	ErrInvariant    = errors.New("invariant violated")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Token errors surfaced by the identity layer.
var (
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")
)

// CustomError represents application-specific errors with additional context.
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements the errors.Unwrap interface.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewNotFoundError creates an error for a referenced entity being absent.
func NewNotFoundError(message string) *CustomError {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewConflictError creates an error for duplicate records.
func NewConflictError(message string) *CustomError {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewInvariantError creates an error for a domain invariant violation
// (weightage sum, mark bound, pass mark bound).
func NewInvariantError(message string) *CustomError {
	return &CustomError{Err: ErrInvariant, Message: message}
}

// NewUnauthorizedError creates an error for failed identity resolution.
func NewUnauthorizedError(message string) *CustomError {
	return &CustomError{Err: ErrUnauthorized, Message: message}
}

// NewForbiddenError creates an error for a role outside an allow-set.
func NewForbiddenError(message string) *CustomError {
	return &CustomError{Err: ErrForbidden, Message: message}
}
