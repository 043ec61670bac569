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

// ErrForbidden indicates that the acting user is not allowed to perform the operation.
var ErrForbidden = errors.New("operation forbidden")

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("resource conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrUnsupportedCurrency indicates a currency code the rate provider does not quote.
// Bad input, never retried.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// ErrProviderUnavailable indicates the rate provider could not be reached or
// returned an unusable response. Transient; the caller may retry with backoff.
var ErrProviderUnavailable = errors.New("rate provider unavailable")

// ErrQuoteExpired indicates a quote whose validity window has passed.
// The caller must request a new quote.
var ErrQuoteExpired = errors.New("quote expired")

// ErrSelfApproval indicates a maker attempting to approve or reject their own payment.
var ErrSelfApproval = errors.New("self approval forbidden")

// ErrStaleState indicates a guarded state transition lost a concurrent race.
// The caller should re-read the entity and retry.
var ErrStaleState = errors.New("stale state conflict")

// AppError wraps a lower-level failure with an HTTP-ish status code and message.
// Repositories use it for infrastructure failures that carry no business meaning.
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

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an error that matches ErrNotFound under errors.Is.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// NewValidationError creates an error that matches ErrValidation under errors.Is.
func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}
