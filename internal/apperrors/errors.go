package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
// Cross-organization references resolve to this error as well, so callers
// never learn whether an entity exists in another tenant.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates a state conflict, such as a duplicate code or an
// attempt to post an entry that is already posted.
var ErrConflict = errors.New("resource conflict")

// ErrPreconditionFailed indicates the entity is not in a state that permits
// the requested operation (closed period, unbalanced entry, missing approval).
var ErrPreconditionFailed = errors.New("precondition failed")

// ErrForbidden indicates the caller lacks permission for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrUnsupported indicates the requested capability is not available in this
// deployment. Capability interfaces return it from their honest
// "unsupported" implementations.
var ErrUnsupported = errors.New("capability not supported")

// ErrInternal indicates an unexpected failure. Details are logged server-side
// and never exposed to the caller.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level failure with a machine-readable code and a
// message that is safe to log. Repositories use it to annotate database
// failures without leaking driver detail to callers.
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
	if e.Err != nil {
		return e.Err
	}
	return ErrInternal
}

// NewAppError creates a new AppError wrapping the given error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewConflictError creates an AppError that unwraps to ErrConflict.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrConflict}
}
