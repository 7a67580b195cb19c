package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/0PeterAdel/Money-Management/internal/middleware"
)

// WalletBalance returns per-member balances plus the group total.
func (h *Handler) WalletBalance(c *gin.Context) {
	report, err := h.ledger.WalletBalances(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	members := make([]gin.H, 0, len(report.Members))
	for _, m := range report.Members {
		members = append(members, gin.H{"user_id": m.UserID, "balance": m.Balance})
	}
	c.JSON(http.StatusOK, gin.H{
		"group_id":             report.GroupID,
		"total_wallet_balance": report.Total,
		"member_balances":      members,
	})
}

type depositDirectRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description"`
}

// DepositDirect appends a confirmed deposit for the caller without a vote.
func (h *Handler) DepositDirect(c *gin.Context) {
	var req depositDirectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.ledger.DepositDirect(c.Request.Context(),
		c.Param("id"), middleware.UserID(c), req.Amount, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction_id": txn.ID, "amount": txn.Amount})
}

type withdrawRequest struct {
	Amount   float64 `json:"amount" binding:"required"`
	Password string  `json:"password" binding:"required"`
}

// Withdraw debits the caller's wallet balance after a password check.
func (h *Handler) Withdraw(c *gin.Context) {
	var req withdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.ledger.Withdraw(c.Request.Context(),
		c.Param("id"), middleware.UserID(c), req.Password, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction_id": txn.ID, "amount": txn.Amount})
}

type settleRequest struct {
	UserID string `json:"user_id"`
}

// SettleDebts runs the wallet settlement executor for the group, optionally
// narrowed to one debtor.
func (h *Handler) SettleDebts(c *gin.Context) {
	var req settleRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logs, err := h.settlements.SettleFromWallet(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	entries := make([]gin.H, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, gin.H{
			"debt_id":        l.DebtID,
			"amount_settled": l.AmountSettled,
			"status":         l.Status,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Wallet settlement process completed.",
		"settlements": entries,
	})
}

// BalanceSummary returns the planner's suggested external transfers.
func (h *Handler) BalanceSummary(c *gin.Context) {
	transfers, err := h.settlements.BalanceSummary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]gin.H, 0, len(transfers))
	for _, t := range transfers {
		resp = append(resp, gin.H{
			"debtor_id":   t.DebtorID,
			"creditor_id": t.CreditorID,
			"amount":      t.Amount,
		})
	}
	c.JSON(http.StatusOK, resp)
}
