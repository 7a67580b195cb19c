package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListDebts returns the full debt history with remaining amounts and
// payments.
func (h *Handler) ListDebts(c *gin.Context) {
	debts, err := h.ledger.DebtHistory(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]debtResponse, 0, len(debts))
	for _, debt := range debts {
		resp = append(resp, toDebtResponse(debt))
	}
	c.JSON(http.StatusOK, resp)
}

type paymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// PayDebt applies a manual partial payment against a debt.
func (h *Handler) PayDebt(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.ledger.ApplyPayment(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"payment_id": payment.ID,
		"debt_id":    payment.DebtID,
		"amount":     payment.Amount,
	})
}
