// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/0PeterAdel/Money-Management/internal/models"
)

// Errors returned by Store implementations. Services translate these for the
// API layer; none of them leaves partial state behind.
var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyVoted is returned when a voter's slot on an action is
	// already set.
	ErrAlreadyVoted = errors.New("vote already cast")

	// ErrNotEligible is returned when the voter has no slot on the action's
	// frozen roster.
	ErrNotEligible = errors.New("not eligible to vote on this action")

	// ErrActionResolved is returned when confirming or rejecting an action
	// that has already left the Pending state.
	ErrActionResolved = errors.New("action already resolved")

	// ErrAmountExceedsRemaining is returned when a payment is larger than
	// the debt's unpaid remainder.
	ErrAmountExceedsRemaining = errors.New("payment exceeds remaining debt")

	// ErrInsufficientWalletFunds is returned when a wallet-funded expense
	// exceeds the group wallet balance.
	ErrInsufficientWalletFunds = errors.New("insufficient group wallet funds")

	// ErrDuplicateName is returned when a unique name is already taken.
	ErrDuplicateName = errors.New("name already exists")

	// ErrDuplicateMember is returned when adding a user already in a group.
	ErrDuplicateMember = errors.New("user is already a member")
)

// Store defines the persistence interface for the ledger. This abstraction
// allows swapping storage backends (SQLite, PostgreSQL, etc.) without
// changing the service layer.
//
// Every mutating method is a single unit of work: it either fully applies or
// leaves no trace.
type Store interface {
	// Users

	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByName(ctx context.Context, name string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id string) error

	// UserHasUnsettledDebts reports whether the user is debtor or creditor
	// on any unsettled debt, in any group.
	UserHasUnsettledDebts(ctx context.Context, userID string) (bool, error)

	// UserWalletTotal sums the user's confirmed wallet rows across all
	// groups.
	UserWalletTotal(ctx context.Context, userID string) (float64, error)

	// UserHasOpenActions reports whether the user initiated any action
	// still in the Pending state.
	UserHasOpenActions(ctx context.Context, userID string) (bool, error)

	// Groups and categories

	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	ListGroups(ctx context.Context) ([]*models.Group, error)
	AddGroupMember(ctx context.Context, groupID, userID string) error
	RemoveGroupMember(ctx context.Context, groupID, userID string) error

	// GroupDebtsOpen reports whether the user has unsettled debts scoped
	// to the given group.
	GroupDebtsOpen(ctx context.Context, groupID, userID string) (bool, error)

	// GetOrCreateCategory looks the name up case-insensitively after
	// trimming; if absent it creates the category with the trimmed,
	// capitalized name.
	GetOrCreateCategory(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)

	// Debts and payments

	GetDebt(ctx context.Context, id string) (*models.Debt, error)
	ListDebts(ctx context.Context) ([]*models.Debt, error)
	ListUnsettledDebts(ctx context.Context) ([]*models.Debt, error)

	// ListUnsettledGroupDebts returns unsettled debts owed by any of the
	// given debtors within the group, ordered by originating-expense date
	// ascending.
	ListUnsettledGroupDebts(ctx context.Context, groupID string, debtorIDs []string) ([]*models.Debt, error)

	// AddPayment appends a payment to the debt and flips its settled flag
	// when the remainder drops within models.SettleEpsilon. Fails with
	// ErrAmountExceedsRemaining before writing anything.
	AddPayment(ctx context.Context, debtID string, amount float64) (*models.Payment, error)

	// Wallet

	CreateWalletTransaction(ctx context.Context, txn *models.WalletTransaction) error
	WalletBalance(ctx context.Context, groupID, userID string) (float64, error)
	GroupWalletBalance(ctx context.Context, groupID string) (float64, error)
	GroupMemberBalances(ctx context.Context, groupID string) (map[string]float64, error)

	// SettleDebtFromWallet applies one wallet-funded settlement as a unit:
	// the debit and credit rows, the payment for the debt's full remainder,
	// and the settled flag flip.
	SettleDebtFromWallet(ctx context.Context, debtID string, debit, credit *models.WalletTransaction, payment *models.Payment) error

	// Actions and votes

	// CreateAction persists the action together with its frozen roster.
	CreateAction(ctx context.Context, action *models.PendingAction) error
	GetAction(ctx context.Context, id string) (*models.PendingAction, error)

	// ListPendingActionsFor returns pending actions where the user's vote
	// is still unset.
	ListPendingActionsFor(ctx context.Context, userID string) ([]*models.PendingAction, error)

	// CastVote sets the voter's slot. It succeeds even on resolved actions
	// (the vote is recorded but inert); it fails with ErrAlreadyVoted or
	// ErrNotEligible.
	CastVote(ctx context.Context, actionID, voterID string, vote models.Vote) error

	// ConfirmExpenseAction flips the action to Confirmed and materializes
	// the expense in the same transaction. When requiredWalletFunds is
	// positive the group balance is checked inside that transaction and
	// ErrInsufficientWalletFunds aborts the whole confirmation. A lost
	// status race returns ErrActionResolved with nothing applied.
	ConfirmExpenseAction(ctx context.Context, actionID string, expense *models.Expense, shares []models.WalletTransaction, requiredWalletFunds float64) error

	// ConfirmDepositAction flips the action to Confirmed and appends the
	// deposit row in the same transaction.
	ConfirmDepositAction(ctx context.Context, actionID string, txn *models.WalletTransaction) error

	// RejectAction flips a pending action to Rejected.
	RejectAction(ctx context.Context, actionID string) error

	// Close releases any resources held by the store.
	Close() error
}
