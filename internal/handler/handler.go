// Package handler exposes the ledger's operations over JSON HTTP.
// Handlers translate between wire shapes and services; no business rules
// live here.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/0PeterAdel/Money-Management/internal/auth"
	"github.com/0PeterAdel/Money-Management/internal/models"
	"github.com/0PeterAdel/Money-Management/internal/service"
	"github.com/0PeterAdel/Money-Management/internal/storage"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	users       *service.UserService
	groups      *service.GroupService
	ledger      *service.LedgerService
	actions     *service.ActionService
	settlements *service.SettlementService
	jwt         *auth.JWTManager
}

// New creates a Handler over the given services.
func New(
	users *service.UserService,
	groups *service.GroupService,
	ledger *service.LedgerService,
	actions *service.ActionService,
	settlements *service.SettlementService,
	jwt *auth.JWTManager,
) *Handler {
	return &Handler{
		users:       users,
		groups:      groups,
		ledger:      ledger,
		actions:     actions,
		settlements: settlements,
		jwt:         jwt,
	}
}

// writeError maps service and storage errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidCredential),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		status = http.StatusUnauthorized
	case errors.Is(err, storage.ErrAlreadyVoted),
		errors.Is(err, storage.ErrNotEligible),
		errors.Is(err, storage.ErrDuplicateName),
		errors.Is(err, storage.ErrDuplicateMember),
		errors.Is(err, storage.ErrActionResolved),
		errors.Is(err, service.ErrUserHasDebts),
		errors.Is(err, service.ErrUserHasBalance),
		errors.Is(err, service.ErrUserHasOpenActions):
		status = http.StatusConflict
	case errors.Is(err, service.ErrParticipantsEmpty),
		errors.Is(err, service.ErrPayerAmbiguous),
		errors.Is(err, service.ErrNoPaymentMethod),
		errors.Is(err, service.ErrAmountNotPositive),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrNotGroupMember),
		errors.Is(err, service.ErrInsufficientFunds),
		errors.Is(err, storage.ErrInsufficientWalletFunds),
		errors.Is(err, storage.ErrAmountExceedsRemaining),
		errors.Is(err, auth.ErrWeakPassword):
		status = http.StatusBadRequest
	}

	c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

// actionResponse is the wire shape of a pending-action snapshot.
type actionResponse struct {
	ID           string          `json:"id"`
	ActionType   string          `json:"action_type"`
	Status       string          `json:"status"`
	Details      interface{}     `json:"details"`
	InitiatorID  string          `json:"initiator_id"`
	GroupID      string          `json:"group_id"`
	Votes        []voteResponse  `json:"votes"`
	VotesFor     int             `json:"votes_for"`
	VotesAgainst int             `json:"votes_against"`
	RosterSize   int             `json:"roster_size"`
	CreatedAt    int64           `json:"created_at"`
}

type voteResponse struct {
	VoterID string `json:"voter_id"`
	Vote    string `json:"vote"`
}

func toActionResponse(action *models.PendingAction) actionResponse {
	approvals, rejections, roster := action.Tally()
	resp := actionResponse{
		ID:           action.ID,
		ActionType:   string(action.Type),
		Status:       string(action.Status),
		InitiatorID:  action.InitiatorID,
		GroupID:      action.GroupID,
		VotesFor:     approvals,
		VotesAgainst: rejections,
		RosterSize:   roster,
		CreatedAt:    action.CreatedAt,
	}
	switch action.Type {
	case models.ActionExpense:
		resp.Details = action.Expense
	case models.ActionWalletDeposit:
		resp.Details = action.Deposit
	}
	for _, v := range action.Votes {
		resp.Votes = append(resp.Votes, voteResponse{VoterID: v.VoterID, Vote: v.Vote.String()})
	}
	return resp
}

// debtResponse is the wire shape of a debt with its payment history.
type debtResponse struct {
	ID              string            `json:"id"`
	ExpenseID       string            `json:"expense_id"`
	DebtorID        string            `json:"debtor_id"`
	CreditorID      string            `json:"creditor_id"`
	TotalAmount     float64           `json:"total_amount"`
	RemainingAmount float64           `json:"remaining_amount"`
	IsSettled       bool              `json:"is_settled"`
	Payments        []paymentResponse `json:"payments"`
}

type paymentResponse struct {
	ID        string  `json:"id"`
	Amount    float64 `json:"amount"`
	CreatedAt int64   `json:"created_at"`
}

func toDebtResponse(debt *models.Debt) debtResponse {
	resp := debtResponse{
		ID:              debt.ID,
		ExpenseID:       debt.ExpenseID,
		DebtorID:        debt.DebtorID,
		CreditorID:      debt.CreditorID,
		TotalAmount:     debt.Amount,
		RemainingAmount: debt.Remaining(),
		IsSettled:       debt.Settled,
	}
	for _, p := range debt.Payments {
		resp.Payments = append(resp.Payments, paymentResponse{
			ID: p.ID, Amount: p.Amount, CreatedAt: p.CreatedAt,
		})
	}
	return resp
}
