package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientBalance indicates the user cannot cover the requested stake.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrDuplicatePendingBet indicates the user already holds a pending bet on the event.
	ErrDuplicatePendingBet = errors.New("user already has a pending bet on this event")

	// ErrInvalidCredentials indicates a failed username/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameTaken indicates the requested username already exists.
	ErrUsernameTaken = errors.New("username already taken")
)

// NotFoundError indicates a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given resource and ID.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// InvalidStateError indicates an operation was attempted on an event in the
// wrong status, e.g. closing an already-closed event.
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}

// NewInvalidStateError creates an InvalidStateError with the given message.
func NewInvalidStateError(message string) *InvalidStateError {
	return &InvalidStateError{Message: message}
}

// IsInvalidState reports whether err is an InvalidStateError.
func IsInvalidState(err error) bool {
	var is *InvalidStateError
	return errors.As(err, &is)
}

// InvalidSelectionError indicates an option name that does not belong to the
// event, either as a declared winner or as a bet selection.
type InvalidSelectionError struct {
	Selection string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("%q is not a valid option for this event", e.Selection)
}

// NewInvalidSelectionError creates an InvalidSelectionError for the selection.
func NewInvalidSelectionError(selection string) *InvalidSelectionError {
	return &InvalidSelectionError{Selection: selection}
}

// IsInvalidSelection reports whether err is an InvalidSelectionError.
func IsInvalidSelection(err error) bool {
	var is *InvalidSelectionError
	return errors.As(err, &is)
}
