package domain

import (
	"errors"
	"fmt"
)

// Sentinel error kinds shared by every layer of the service.
var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrInvalidState   = errors.New("invalid state transition")
	ErrPrecondition   = errors.New("precondition failed")
	ErrValidation     = errors.New("validation failed")
	ErrTransientStore = errors.New("store temporarily unavailable")
	ErrCommit         = errors.New("commit failed")
	ErrUnauthorized   = errors.New("unauthorized")
)

// DomainError carries a sentinel kind plus a human readable message.
// Cause, when set, is the underlying error that produced it.
type DomainError struct {
	Err     error
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Is reports whether target is the sentinel kind of this error.
func (e *DomainError) Is(target error) bool {
	return e.Err == target
}

// Unwrap exposes the cause so errors.Is can match sentinels further down the chain.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the caller may resubmit the same request.
func (e *DomainError) Retryable() bool {
	return e.Err == ErrCommit || e.Err == ErrTransientStore
}

// NewNotFoundError creates an error for a missing entity.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{Err: ErrNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewConflictError creates an error for a concurrent or duplicate write.
func NewConflictError(msg string) *DomainError {
	return &DomainError{Err: ErrConflict, Message: msg}
}

// NewInvalidStateError creates an error for a forbidden state transition.
func NewInvalidStateError(from, to string) *DomainError {
	return &DomainError{Err: ErrInvalidState, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// NewPreconditionError creates an error for a missing prerequisite.
func NewPreconditionError(msg string) *DomainError {
	return &DomainError{Err: ErrPrecondition, Message: msg}
}

// NewValidationError creates an error for bad user input.
func NewValidationError(msg string) *DomainError {
	return &DomainError{Err: ErrValidation, Message: msg}
}

// NewTransientStoreError wraps a store failure that may resolve on its own.
func NewTransientStoreError(msg string, cause error) *DomainError {
	return &DomainError{Err: ErrTransientStore, Message: msg, Cause: cause}
}

// NewCommitError wraps a failed durable write.
func NewCommitError(msg string, cause error) *DomainError {
	return &DomainError{Err: ErrCommit, Message: msg, Cause: cause}
}

// NewUnauthorizedError creates an error for a missing or bad identity.
func NewUnauthorizedError(msg string) *DomainError {
	return &DomainError{Err: ErrUnauthorized, Message: msg}
}

// AsDomainError extracts a *DomainError from an error chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
