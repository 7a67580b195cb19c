package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/0PeterAdel/Money-Management/internal/middleware"
	"github.com/0PeterAdel/Money-Management/internal/models"
)

type proposeExpenseRequest struct {
	Description    string   `json:"description" binding:"required"`
	TotalAmount    float64  `json:"total_amount" binding:"required"`
	GroupID        string   `json:"group_id" binding:"required"`
	ParticipantIDs []string `json:"participant_ids"`
	CategoryName   string   `json:"category_name" binding:"required"`
	PayerID        string   `json:"payer_id"`
	FromWallet     bool     `json:"from_wallet"`
}

// ProposeExpense opens an expense proposal for group vote. The response is
// already Confirmed when the caller is the group's sole member.
func (h *Handler) ProposeExpense(c *gin.Context) {
	var req proposeExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action, err := h.actions.ProposeExpense(c.Request.Context(), middleware.UserID(c), &models.ExpenseProposal{
		Description:    req.Description,
		TotalAmount:    req.TotalAmount,
		GroupID:        req.GroupID,
		ParticipantIDs: req.ParticipantIDs,
		CategoryName:   req.CategoryName,
		PayerID:        req.PayerID,
		FromWallet:     req.FromWallet,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toActionResponse(action))
}

type proposeDepositRequest struct {
	GroupID     string  `json:"group_id" binding:"required"`
	UserID      string  `json:"user_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description"`
}

// ProposeDeposit opens a wallet-deposit proposal for group vote.
func (h *Handler) ProposeDeposit(c *gin.Context) {
	var req proposeDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action, err := h.actions.ProposeDeposit(c.Request.Context(), middleware.UserID(c), &models.DepositProposal{
		GroupID:     req.GroupID,
		UserID:      req.UserID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toActionResponse(action))
}

type voteRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// CastVote records the caller's vote on an action and returns the updated
// snapshot.
func (h *Handler) CastVote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action, err := h.actions.CastVote(c.Request.Context(), c.Param("id"), middleware.UserID(c), *req.Approve)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toActionResponse(action))
}

// GetAction returns one action snapshot.
func (h *Handler) GetAction(c *gin.Context) {
	action, err := h.actions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toActionResponse(action))
}

// ListPendingActions returns actions still awaiting the caller's vote.
func (h *Handler) ListPendingActions(c *gin.Context) {
	actions, err := h.actions.ListPendingFor(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]actionResponse, 0, len(actions))
	for _, action := range actions {
		resp = append(resp, toActionResponse(action))
	}
	c.JSON(http.StatusOK, resp)
}
