package models

import "math"

// SettleEpsilon is the tolerance under which a debt's remaining amount is
// considered fully paid. Amounts are rounded to two decimals at every
// computed boundary, so anything below a cent is float noise.
const SettleEpsilon = 0.01

// Expense represents a shared expense confirmed by group vote.
// It owns one Debt per non-payer participant when paid by a single user,
// or one negative wallet transaction per participant when wallet-funded.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is the human-readable label for the expense.
	Description string

	// TotalAmount is the full expense amount, split equally among
	// participants.
	TotalAmount float64

	// PayerID is the user who paid out of pocket. Empty when the expense
	// was funded from the group wallet; the two are mutually exclusive.
	PayerID string

	// GroupID is the group the expense belongs to.
	GroupID string

	// CategoryID references the expense category.
	CategoryID string

	// CreatedAt is the Unix timestamp when the expense was confirmed.
	// Wallet settlement processes debts in this order.
	CreatedAt int64

	// Debts are the per-participant shares owed to the payer.
	Debts []Debt
}

// Debt is one participant's share of an expense, owed to the payer.
type Debt struct {
	// ID is the unique identifier for the debt (UUID format).
	ID string

	// ExpenseID is the originating expense.
	ExpenseID string

	// DebtorID owes the money; CreditorID is owed.
	DebtorID   string
	CreditorID string

	// Amount is the original share amount. Partial payments accumulate in
	// Payments; the invariant 0 <= sum(payments) <= Amount always holds.
	Amount float64

	// Settled is true once Remaining() is within SettleEpsilon of zero.
	Settled bool

	// Payments are the ordered partial payments applied to this debt.
	Payments []Payment

	// ExpenseCreatedAt mirrors the owning expense's timestamp for
	// settlement ordering. Populated on reads, not stored on the debt row.
	ExpenseCreatedAt int64
}

// Paid returns the sum of all payments applied to the debt.
func (d *Debt) Paid() float64 {
	var total float64
	for _, p := range d.Payments {
		total += p.Amount
	}
	return total
}

// Remaining returns the unpaid portion of the debt, rounded to two decimals.
func (d *Debt) Remaining() float64 {
	return math.Round((d.Amount-d.Paid())*100) / 100
}

// Payment is a single, append-only partial payment against a debt.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// DebtID is the debt this payment applies to.
	DebtID string

	// Amount paid. Never exceeds the debt's remaining amount at the time
	// of recording.
	Amount float64

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
