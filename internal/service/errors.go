// Package service implements the ledger's business operations on top of
// storage.Store: proposal voting, confirmed-expense recording, debt
// settlement planning, and wallet settlement.
package service

import "errors"

// Validation and integrity errors raised before any mutation. Every failing
// operation leaves zero partial state, so callers may retry freely.
var (
	// ErrParticipantsEmpty is returned for an expense with no participants.
	ErrParticipantsEmpty = errors.New("at least one participant is required")

	// ErrPayerAmbiguous is returned when both an out-of-pocket payer and
	// wallet funding are specified.
	ErrPayerAmbiguous = errors.New("choose one payment method")

	// ErrNoPaymentMethod is returned when neither a payer nor wallet
	// funding is specified.
	ErrNoPaymentMethod = errors.New("must specify a payment method")

	// ErrAmountNotPositive is returned for zero or negative amounts.
	ErrAmountNotPositive = errors.New("amount must be positive")

	// ErrNameRequired is returned when a required name is empty.
	ErrNameRequired = errors.New("name must not be empty")

	// ErrNotGroupMember is returned when the acting or referenced user is
	// not in the group.
	ErrNotGroupMember = errors.New("user is not a member of this group")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the
	// user's wallet balance.
	ErrInsufficientFunds = errors.New("insufficient wallet balance")

	// Integrity guards on destructive membership operations.
	ErrUserHasDebts       = errors.New("user has outstanding debts")
	ErrUserHasBalance     = errors.New("user has a non-zero wallet balance")
	ErrUserHasOpenActions = errors.New("user has unresolved pending actions")
)
