package models

// Transfer is one suggested payment in a balance summary: the debtor pays
// the creditor the given amount externally (outside the wallet).
type Transfer struct {
	DebtorID   string
	CreditorID string
	Amount     float64
}

// Settlement log statuses reported by the wallet settlement executor.
const (
	SettlementFullySettled      = "Fully Settled"
	SettlementInsufficientFunds = "Insufficient Funds"
)

// SettlementLog records the outcome for one debt processed by a wallet
// settlement run. AmountSettled is zero unless the debt was fully paid.
type SettlementLog struct {
	DebtID        string
	AmountSettled float64
	Status        string
}
