// Package errors provides centralized error definitions and error handling
// utilities for taskbin. It defines the error kinds that can escape the core
// (validation, permission, credential, not-found, store) along with
// constructors, context-carrying error structs, and classification helpers
// used by the CLI and TUI to decide how to surface a failure.
//
// # Error Kinds
//
//   - ValidationError: a draft failed field or closed-set validation before
//     any remote call was made
//   - PermissionDeniedError: a mutation was attempted in read-only state
//   - InvalidCredentialError: a login attempt with the wrong passcode
//   - NotFoundError: a mutation targeted a task that no longer exists
//   - StoreError: the remote bin could not be read or written
//
// All of these are recoverable: every one leaves the in-memory collection in
// the state it had before the failed operation.
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewValidationError("name is required").WithField("name")
//	err := errors.NewStoreError("overwrite bin", cause)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrPermissionDenied) { ... }
//
//	var storeErr *errors.StoreError
//	if errors.As(err, &storeErr) { ... }
//
//	switch errors.KindOf(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Kind identifies the category of a core error. The UI collaborator receives
// a Kind alongside the message so it can pick the right recovery affordance
// (keep the form open, prompt for the passcode again, offer a retry).
type Kind int

const (
	// KindUnknown is any error the core did not classify.
	KindUnknown Kind = iota
	// KindValidation is a draft that failed validation locally.
	KindValidation
	// KindPermissionDenied is a write attempted without a grant.
	KindPermissionDenied
	// KindInvalidCredential is a passcode that did not match.
	KindInvalidCredential
	// KindNotFound is a mutation whose target task no longer exists.
	KindNotFound
	// KindStore is a transport or remote-side failure.
	KindStore
	// KindBusy is a mutation rejected because another one is in flight.
	KindBusy
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindPermissionDenied:
		return "permission_denied"
	case KindInvalidCredential:
		return "invalid_credential"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store"
	case KindBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Sentinel errors. Callers match these with errors.Is.
var (
	// ErrPermissionDenied indicates a mutation was attempted while the gate
	// is in read-only state.
	ErrPermissionDenied = New("write permission denied")
	// ErrInvalidCredential indicates the supplied passcode did not match.
	ErrInvalidCredential = New("invalid credential")
	// ErrOperationInFlight indicates a mutation was attempted while another
	// mutation's remote round trip is outstanding.
	ErrOperationInFlight = New("another operation is in flight")
	// ErrInvalidInput indicates that draft validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// ValidationError
// -----------------------------------------------------------------------------

// ValidationError represents a draft that failed validation before any
// remote call was made. The triggering form stays open upstream.
//
// Example:
//
//	err := errors.NewValidationError("status is not a known status").
//		WithField("status").WithValue("done")
type ValidationError struct {
	message string
	cause   error

	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{message: message}
}

// WithField adds the offending field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the offending value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Unwrap returns the underlying error, if any.
func (e *ValidationError) Unwrap() error { return e.cause }

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.cause != nil && errors.Is(e.cause, target)
}

// -----------------------------------------------------------------------------
// NotFoundError
// -----------------------------------------------------------------------------

// NotFoundError represents a mutation whose target task could not be found,
// typically because it was deleted from the bin by another client.
//
// Example:
//
//	err := errors.NewNotFoundError("task", "9f1c...")
//	fmt.Println(err) // "task '9f1c...' not found"
type NotFoundError struct {
	cause error

	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Unwrap returns the underlying error, if any.
func (e *NotFoundError) Unwrap() error { return e.cause }

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.cause != nil && errors.Is(e.cause, target)
}

// -----------------------------------------------------------------------------
// StoreError
// -----------------------------------------------------------------------------

// StoreError represents a transport or remote-side failure talking to the
// bin. It always carries the underlying cause. The store client attaches the
// operation ("fetch bin", "overwrite bin") and, when a response was
// received, the HTTP status code.
//
// Example:
//
//	err := errors.NewStoreError("fetch bin", cause).WithStatusCode(503)
type StoreError struct {
	operation string
	cause     error

	// StatusCode is the HTTP status of the failed request, or 0 when the
	// request never produced a response.
	StatusCode int
}

// NewStoreError creates a new StoreError.
func NewStoreError(operation string, cause error) *StoreError {
	return &StoreError{operation: operation, cause: cause}
}

// WithStatusCode adds the HTTP status code to the error context.
func (e *StoreError) WithStatusCode(code int) *StoreError {
	e.StatusCode = code
	return e
}

// Error returns the formatted error message.
func (e *StoreError) Error() string {
	prefix := "store error"
	if e.StatusCode != 0 {
		prefix = fmt.Sprintf("store error [status=%d]", e.StatusCode)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.operation, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.operation)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error { return e.cause }

// Is checks if this error matches the target.
func (e *StoreError) Is(target error) bool {
	if _, ok := target.(*StoreError); ok {
		return true
	}
	return e.cause != nil && errors.Is(e.cause, target)
}

// -----------------------------------------------------------------------------
// Classification helpers
// -----------------------------------------------------------------------------

// KindOf classifies an error into a Kind for the UI collaborator.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	case Is(err, ErrInvalidCredential):
		return KindInvalidCredential
	case Is(err, ErrOperationInFlight):
		return KindBusy
	}

	var validation *ValidationError
	var notFound *NotFoundError
	var store *StoreError
	switch {
	case As(err, &validation):
		return KindValidation
	case As(err, &notFound):
		return KindNotFound
	case As(err, &store):
		return KindStore
	}
	return KindUnknown
}

// IsRetryable returns true if the error represents a transient condition
// that may succeed if the user simply tries again. Only store failures
// qualify: every other kind needs different input, not a retry.
func IsRetryable(err error) bool {
	return KindOf(err) == KindStore || KindOf(err) == KindBusy
}

// IsUserFacing returns true if the error message is safe to display to end
// users. Every classified kind is user-facing; unclassified errors are
// considered internal.
func IsUserFacing(err error) bool {
	return KindOf(err) != KindUnknown
}

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "create task")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
