package common

import (
	"errors"
	"fmt"
)

// Expected rejection causes, surfaced verbatim to the caller.
var (
	ErrInvalidAmount       = errors.New("stake must be a positive number of points")
	ErrInvalidOutcome      = errors.New("outcome is not valid for this bet")
	ErrInvalidBet          = errors.New("bet definition is invalid")
	ErrTooFewLegs          = errors.New("a parlay needs at least 2 legs")
	ErrDuplicateLeg        = errors.New("a parlay cannot include the same bet twice")
	ErrBetNotFound         = errors.New("bet not found")
	ErrBetNotOpen          = errors.New("bet is no longer open for wagers")
	ErrBetAlreadyResolved  = errors.New("bet has already been resolved")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrWagerNotFound       = errors.New("no wager on this bet")
	ErrUserNotFound        = errors.New("user not found")
)

// ValidationError rejects bad input before any store interaction.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// PreconditionError rejects an operation inside its transaction: the input
// was well-formed but the current state forbids it (bet resolved, balance
// too low). Nothing was committed.
type PreconditionError struct {
	Err error
}

func (e *PreconditionError) Error() string {
	return e.Err.Error()
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// ConflictError means the store kept reporting write conflicts after the
// bounded retries. The operation may be retried by the caller.
type ConflictError struct {
	Err error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("transaction conflict: %s", e.Err)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// InternalError wraps unexpected store failures.
type InternalError struct {
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}
