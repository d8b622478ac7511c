package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, malformed stop times).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrNoEligibleTrains is returned by the journey planner when no registered
// train serves the requested origin/destination after the requested time.
// This is a normal business outcome, not an internal fault.
// Handlers should map this to HTTP 404.
var ErrNoEligibleTrains = errors.New("no eligible trains")

// ErrInsufficientFunds is the sentinel matched by errors.Is for a purchase
// whose fare exceeds the wallet balance. The concrete error carries the
// amounts; see InsufficientFundsError.
// Handlers should map this to HTTP 402 Payment Required.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrConflict is returned when the conditional wallet debit could not be
// applied because the balance changed between read and write. The purchase
// is retried from the beginning; if the conflict persists it surfaces to the
// caller, who may retry the request.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("concurrent update conflict")

// InsufficientFundsError reports by how much a wallet falls short of a fare.
// It matches ErrInsufficientFunds under errors.Is.
type InsufficientFundsError struct {
	Balance int64
	Fare    int64
}

// Shortage is the additional amount the wallet needs to cover the fare.
func (e *InsufficientFundsError) Shortage() int64 { return e.Fare - e.Balance }

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: recharge %d to purchase", e.Shortage())
}

func (e *InsufficientFundsError) Is(target error) bool { return target == ErrInsufficientFunds }
