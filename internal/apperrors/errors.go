package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller is not authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller lacks the role required for the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates that the action conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict")

// ErrInvalidTransition indicates a state machine transition that is not allowed from the current state.
var ErrInvalidTransition = errors.New("invalid state transition")

// ErrUnavailable indicates that an optional collaborator is not configured.
var ErrUnavailable = errors.New("service unavailable")

// ErrInternal indicates an unexpected failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish code and a human message on top of a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationFailedError returns an error that matches ErrValidation.
func NewValidationFailedError(message string) error {
	return NewAppError(400, message, ErrValidation)
}

// NewConflictError returns an error that matches ErrConflict.
func NewConflictError(message string) error {
	return NewAppError(409, message, ErrConflict)
}

// NewNotFoundError returns an error that matches ErrNotFound.
func NewNotFoundError(message string) error {
	return NewAppError(404, message, ErrNotFound)
}

// NewInvalidTransitionError returns an error that matches ErrInvalidTransition.
func NewInvalidTransitionError(message string) error {
	return NewAppError(409, message, ErrInvalidTransition)
}
