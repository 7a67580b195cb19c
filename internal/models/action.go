package models

// ActionType identifies which ledger mutation a pending action defers.
type ActionType string

const (
	ActionExpense       ActionType = "EXPENSE"
	ActionWalletDeposit ActionType = "WALLET_DEPOSIT"
)

// ActionStatus is the lifecycle state of a pending action.
// Confirmed and Rejected are terminal.
type ActionStatus string

const (
	ActionPending   ActionStatus = "PENDING"
	ActionConfirmed ActionStatus = "CONFIRMED"
	ActionRejected  ActionStatus = "REJECTED"
)

// Vote is a roster member's decision on a pending action. The zero value is
// Unset: the member has an ActionVote row but has not decided yet.
type Vote int

const (
	VoteUnset Vote = iota
	VoteApprove
	VoteReject
)

// String returns the storage representation of the vote.
func (v Vote) String() string {
	switch v {
	case VoteApprove:
		return "approve"
	case VoteReject:
		return "reject"
	default:
		return "unset"
	}
}

// ParseVote converts a storage representation back to a Vote.
func ParseVote(s string) Vote {
	switch s {
	case "approve":
		return VoteApprove
	case "reject":
		return VoteReject
	default:
		return VoteUnset
	}
}

// ExpenseProposal carries the not-yet-applied parameters of a proposed
// expense. Exactly one of PayerID and FromWallet is set.
type ExpenseProposal struct {
	Description    string   `json:"description"`
	TotalAmount    float64  `json:"total_amount"`
	GroupID        string   `json:"group_id"`
	ParticipantIDs []string `json:"participant_ids"`
	CategoryName   string   `json:"category_name"`
	PayerID        string   `json:"payer_id,omitempty"`
	FromWallet     bool     `json:"from_wallet,omitempty"`
}

// DepositProposal carries the not-yet-applied parameters of a proposed
// wallet deposit.
type DepositProposal struct {
	GroupID     string  `json:"group_id"`
	UserID      string  `json:"user_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

// PendingAction is a proposed ledger mutation awaiting multi-party approval.
// Its voter roster is fixed at proposal time: later group membership changes
// do not add or remove voters.
type PendingAction struct {
	// ID is the unique identifier for the action (UUID format).
	ID string

	Type   ActionType
	Status ActionStatus

	// Exactly one of Expense and Deposit is non-nil, matching Type.
	Expense *ExpenseProposal
	Deposit *DepositProposal

	// InitiatorID proposed the action. Their vote is pre-set to approve.
	InitiatorID string

	// GroupID is the group whose members form the voter roster.
	GroupID string

	// Votes is the frozen roster, one row per member at proposal time.
	Votes []ActionVote

	// CreatedAt is the Unix timestamp when the action was proposed.
	CreatedAt int64
}

// Tally counts approvals and rejections over the full roster.
func (a *PendingAction) Tally() (approvals, rejections, roster int) {
	for _, v := range a.Votes {
		switch v.Vote {
		case VoteApprove:
			approvals++
		case VoteReject:
			rejections++
		}
	}
	return approvals, rejections, len(a.Votes)
}

// ActionVote is one roster member's slot on a pending action.
type ActionVote struct {
	ActionID string
	VoterID  string
	Vote     Vote
}
