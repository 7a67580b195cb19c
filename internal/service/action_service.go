package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/0PeterAdel/Money-Management/internal/models"
	"github.com/0PeterAdel/Money-Management/internal/storage"
)

// ActionService runs the proposal-and-voting state machine. A proposal
// snapshots the group's members as a frozen voter roster with the
// initiator's vote pre-set to approve; every cast recomputes the majority
// over the full roster and resolves the action the instant a threshold is
// crossed, even with unvoted members remaining.
type ActionService struct {
	store  storage.Store
	ledger *LedgerService

	// locks serializes vote casting per action ID.
	locks *keyedMutex
}

// NewActionService creates an ActionService over the given store and ledger.
func NewActionService(store storage.Store, ledger *LedgerService) *ActionService {
	return &ActionService{
		store:  store,
		ledger: ledger,
		locks:  newKeyedMutex(),
	}
}

// ProposeExpense creates an expense proposal for a group vote. The returned
// snapshot is already Confirmed when the initiator's pre-approval alone
// crosses the majority (sole-member groups).
func (s *ActionService) ProposeExpense(ctx context.Context, initiatorID string, p *models.ExpenseProposal) (*models.PendingAction, error) {
	if err := ValidateExpenseProposal(p); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, p.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(initiatorID) {
		return nil, ErrNotGroupMember
	}
	for _, participant := range p.ParticipantIDs {
		if !group.HasMember(participant) {
			return nil, ErrNotGroupMember
		}
	}
	if p.PayerID != "" && !group.HasMember(p.PayerID) {
		return nil, ErrNotGroupMember
	}

	action := &models.PendingAction{
		Type:        models.ActionExpense,
		Expense:     p,
		InitiatorID: initiatorID,
		GroupID:     p.GroupID,
	}
	return s.propose(ctx, action, group)
}

// ProposeDeposit creates a wallet-deposit proposal for a group vote. In a
// sole-member group there is nothing to decide and the deposit confirms in
// the same call.
func (s *ActionService) ProposeDeposit(ctx context.Context, initiatorID string, p *models.DepositProposal) (*models.PendingAction, error) {
	if p.Amount <= 0 {
		return nil, ErrAmountNotPositive
	}

	group, err := s.store.GetGroup(ctx, p.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(initiatorID) || !group.HasMember(p.UserID) {
		return nil, ErrNotGroupMember
	}

	action := &models.PendingAction{
		Type:        models.ActionWalletDeposit,
		Deposit:     p,
		InitiatorID: initiatorID,
		GroupID:     p.GroupID,
	}
	return s.propose(ctx, action, group)
}

// propose freezes the roster, persists the action, then runs the same
// threshold evaluation as a vote cast. With one member the initiator's
// pre-approval is already 1/1 and the action resolves immediately.
func (s *ActionService) propose(ctx context.Context, action *models.PendingAction, group *models.Group) (*models.PendingAction, error) {
	for _, memberID := range group.MemberIDs {
		vote := models.VoteUnset
		if memberID == action.InitiatorID {
			vote = models.VoteApprove
		}
		action.Votes = append(action.Votes, models.ActionVote{
			VoterID: memberID,
			Vote:    vote,
		})
	}

	if err := s.store.CreateAction(ctx, action); err != nil {
		return nil, err
	}
	slog.Info("Action proposed",
		"action_id", action.ID,
		"type", action.Type,
		"group_id", action.GroupID,
		"initiator_id", action.InitiatorID,
		"roster", len(action.Votes),
	)

	unlock := s.locks.lock(action.ID)
	defer unlock()
	if err := s.evaluate(ctx, action); err != nil {
		return nil, err
	}
	return s.store.GetAction(ctx, action.ID)
}

// CastVote records the voter's decision and re-evaluates the majority.
// Votes on already-resolved actions are recorded but have no further
// effect. Fails with storage.ErrAlreadyVoted or storage.ErrNotEligible.
func (s *ActionService) CastVote(ctx context.Context, actionID, voterID string, approve bool) (*models.PendingAction, error) {
	unlock := s.locks.lock(actionID)
	defer unlock()

	vote := models.VoteReject
	if approve {
		vote = models.VoteApprove
	}
	if err := s.store.CastVote(ctx, actionID, voterID, vote); err != nil {
		return nil, err
	}

	action, err := s.store.GetAction(ctx, actionID)
	if err != nil {
		return nil, err
	}
	if action.Status == models.ActionPending {
		if err := s.evaluate(ctx, action); err != nil {
			return nil, err
		}
		action, err = s.store.GetAction(ctx, actionID)
		if err != nil {
			return nil, err
		}
	}

	slog.Info("Vote cast",
		"action_id", actionID, "voter_id", voterID, "vote", vote.String(),
		"status", action.Status)
	return action, nil
}

// evaluate recomputes the tally over the full fixed roster and applies the
// deferred mutation when a threshold is crossed: approvals/n > 0.5 confirms,
// rejections/n >= 0.5 rejects, anything else stays pending regardless of how
// many members have yet to vote. Confirmation and the ledger apply share one
// storage transaction, so resolution happens at most once.
func (s *ActionService) evaluate(ctx context.Context, action *models.PendingAction) error {
	approvals, rejections, roster := action.Tally()
	if roster == 0 {
		return nil
	}

	switch {
	case float64(approvals)/float64(roster) > 0.5:
		return s.confirm(ctx, action)
	case float64(rejections)/float64(roster) >= 0.5:
		err := s.store.RejectAction(ctx, action.ID)
		if errors.Is(err, storage.ErrActionResolved) {
			return nil
		}
		if err != nil {
			return err
		}
		slog.Info("Action rejected",
			"action_id", action.ID, "rejections", rejections, "roster", roster)
		return nil
	default:
		return nil
	}
}

func (s *ActionService) confirm(ctx context.Context, action *models.PendingAction) error {
	var err error
	switch action.Type {
	case models.ActionExpense:
		_, err = s.ledger.RecordConfirmedExpense(ctx, action.ID, action.Expense)
	case models.ActionWalletDeposit:
		_, err = s.ledger.RecordConfirmedDeposit(ctx, action.ID, action.Deposit)
	}
	if errors.Is(err, storage.ErrActionResolved) {
		// Lost the status race: the mutation was already applied exactly
		// once elsewhere.
		return nil
	}
	if err != nil {
		return err
	}
	slog.Info("Action confirmed", "action_id", action.ID, "type", action.Type)
	return nil
}

// Get returns one action snapshot with its roster.
func (s *ActionService) Get(ctx context.Context, actionID string) (*models.PendingAction, error) {
	return s.store.GetAction(ctx, actionID)
}

// ListPendingFor returns pending actions still awaiting the user's vote.
func (s *ActionService) ListPendingFor(ctx context.Context, userID string) ([]*models.PendingAction, error) {
	return s.store.ListPendingActionsFor(ctx, userID)
}
