// Package models defines the core domain records for the money-management
// ledger.
//
// # Records
//
//   - User, Group, Category: identity and scoping
//   - Expense, Debt, Payment: who owes whom, and how much has been paid back
//   - WalletTransaction: append-only rows of the pooled group wallet; balances
//     are always derived by summing confirmed rows, never stored
//   - PendingAction, ActionVote: a proposed ledger mutation and the frozen
//     voter roster deciding it
//
// # Design Principles
//
// 1. Flat structs with ID-string references instead of pointers, to avoid
// circular references between records.
//
// 2. Expense rows and deposit-type wallet rows are never created directly:
// they exist only as the applied effect of a PendingAction that reached
// Confirmed. Withdrawals and settlements move the acting user's own funds and
// are created synchronously.
//
// 3. Timestamps are Unix seconds (int64), matching the storage layer.
package models
