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

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrCycleDetected indicates that a category parent assignment would create a loop.
var ErrCycleDetected = errors.New("category hierarchy cycle detected")

// ErrGroupMismatch indicates that a reorder payload spans categories outside the stated sibling group.
var ErrGroupMismatch = errors.New("reorder ids do not match the sibling group")

// ErrTypeMismatch indicates that a replacement category's type differs from the category being removed.
var ErrTypeMismatch = errors.New("category type mismatch")

// ErrSettingsNotFound indicates that the organization has no settings record; reporting cannot proceed.
var ErrSettingsNotFound = errors.New("organization settings not found")

// ErrSoftClosed indicates an edit to a posted transaction dated inside the soft-closed period
// without the explicit override flag.
var ErrSoftClosed = errors.New("transaction date falls in a soft-closed period")

// AppError carries a status code alongside the wrapped cause.
// Repositories use it to report infrastructure failures without leaking driver errors.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
