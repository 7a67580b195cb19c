package models

// TransactionType classifies a wallet transaction.
type TransactionType string

const (
	// TransactionDeposit is money paid into the group wallet (positive).
	TransactionDeposit TransactionType = "DEPOSIT"
	// TransactionExpenseShare is a participant's share of a wallet-funded
	// expense (negative).
	TransactionExpenseShare TransactionType = "EXPENSE"
	// TransactionWithdrawal is a credential-gated direct debit (negative).
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
	// TransactionSettlement moves wallet funds from a debtor to a creditor
	// to pay down a debt (one negative and one positive row per settlement).
	TransactionSettlement TransactionType = "SETTLEMENT"
)

// TransactionStatus is the confirmation state of a wallet transaction.
// Only confirmed rows count toward balances.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionConfirmed TransactionStatus = "CONFIRMED"
)

// WalletTransaction is one signed, append-only row of a group's pooled
// wallet. A user's balance in a group is the sum of their confirmed rows;
// the group balance is the sum over all members. Balances are never stored.
type WalletTransaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// GroupID scopes the transaction to one group's wallet.
	GroupID string

	// UserID is the member whose balance the amount applies to.
	UserID string

	// Amount is signed: deposits and settlement credits are positive,
	// withdrawals, expense shares and settlement debits are negative.
	Amount float64

	Type   TransactionType
	Status TransactionStatus

	// Description is optional free text (e.g. "Share of: groceries").
	Description string

	// CreatedAt is the Unix timestamp when the row was appended.
	CreatedAt int64
}

// MemberBalance pairs a group member with their derived wallet balance.
type MemberBalance struct {
	UserID  string
	Balance float64
}
