package errors

import (
	"errors"
	"fmt"
)

// ValidationError rejects an intent before any write is built. It is never
// retried; the caller fixes the input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

var ErrInsufficientFunds = NewValidationError("Insufficient funds")
var ErrPaymentExceedsDebt = NewValidationError("Payment amount exceeds remaining debt")
var ErrNoAccountSelected = NewValidationError("An account must be selected")

// NotFoundError aborts an operation whose referenced entity is missing from
// the store at operation time.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s/%s not found", e.Collection, e.ID)
}

func NewNotFoundError(collection, id string) error {
	return &NotFoundError{Collection: collection, ID: id}
}

func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// CommitError wraps a rejected atomic batch. Nothing was applied, so the
// caller may retry the whole intent from scratch.
type CommitError struct {
	Cause error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("atomic commit failed: %v", e.Cause)
}

func (e *CommitError) Unwrap() error {
	return e.Cause
}

func NewCommitError(cause error) error {
	return &CommitError{Cause: cause}
}

func IsCommitError(err error) bool {
	var commitError *CommitError
	return errors.As(err, &commitError)
}
