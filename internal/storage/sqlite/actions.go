package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/0PeterAdel/Money-Management/internal/models"
	"github.com/0PeterAdel/Money-Management/internal/storage"
)

// CreateAction persists the action and its frozen voter roster.
func (s *SQLiteStore) CreateAction(ctx context.Context, action *models.PendingAction) error {
	if action.ID == "" {
		action.ID = uuid.New().String()
	}
	if action.CreatedAt == 0 {
		action.CreatedAt = time.Now().Unix()
	}
	if action.Status == "" {
		action.Status = models.ActionPending
	}

	details, err := encodeDetails(action)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO pending_actions (id, action_type, status, details, initiator_id, group_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		action.ID, action.Type, action.Status, details, action.InitiatorID, action.GroupID, action.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert action: %w", err)
	}

	for i := range action.Votes {
		vote := &action.Votes[i]
		vote.ActionID = action.ID
		_, err = tx.ExecContext(ctx,
			"INSERT INTO action_votes (action_id, voter_id, vote) VALUES (?, ?, ?)",
			vote.ActionID, vote.VoterID, vote.Vote.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert action vote: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func encodeDetails(action *models.PendingAction) (string, error) {
	var payload interface{}
	switch action.Type {
	case models.ActionExpense:
		payload = action.Expense
	case models.ActionWalletDeposit:
		payload = action.Deposit
	default:
		return "", fmt.Errorf("unknown action type: %s", action.Type)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode action details: %w", err)
	}
	return string(raw), nil
}

func decodeDetails(action *models.PendingAction, details string) error {
	switch action.Type {
	case models.ActionExpense:
		action.Expense = &models.ExpenseProposal{}
		if err := json.Unmarshal([]byte(details), action.Expense); err != nil {
			return fmt.Errorf("failed to decode expense proposal: %w", err)
		}
	case models.ActionWalletDeposit:
		action.Deposit = &models.DepositProposal{}
		if err := json.Unmarshal([]byte(details), action.Deposit); err != nil {
			return fmt.Errorf("failed to decode deposit proposal: %w", err)
		}
	default:
		return fmt.Errorf("unknown action type: %s", action.Type)
	}
	return nil
}

// GetAction retrieves an action by ID with its full roster.
func (s *SQLiteStore) GetAction(ctx context.Context, id string) (*models.PendingAction, error) {
	action := &models.PendingAction{}
	var details string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, action_type, status, details, initiator_id, group_id, created_at
		 FROM pending_actions WHERE id = ?`, id,
	).Scan(&action.ID, &action.Type, &action.Status, &details,
		&action.InitiatorID, &action.GroupID, &action.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get action: %w", err)
	}
	if err := decodeDetails(action, details); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT action_id, voter_id, vote FROM action_votes WHERE action_id = ? ORDER BY voter_id", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get action votes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var vote models.ActionVote
		var raw string
		if err := rows.Scan(&vote.ActionID, &vote.VoterID, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan action vote: %w", err)
		}
		vote.Vote = models.ParseVote(raw)
		action.Votes = append(action.Votes, vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate action votes: %w", err)
	}

	return action, nil
}

// ListPendingActionsFor returns pending actions where the user's vote slot is
// still unset.
func (s *SQLiteStore) ListPendingActionsFor(ctx context.Context, userID string) ([]*models.PendingAction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT a.id FROM pending_actions a
		 JOIN action_votes v ON v.action_id = a.id
		 WHERE a.status = ? AND v.voter_id = ? AND v.vote = 'unset'
		 ORDER BY a.created_at, a.id`,
		models.ActionPending, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending actions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan action id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate action ids: %w", err)
	}

	actions := make([]*models.PendingAction, 0, len(ids))
	for _, id := range ids {
		action, err := s.GetAction(ctx, id)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}
	return actions, nil
}

// CastVote sets the voter's slot. The slot must exist (the roster is frozen
// at proposal time) and must still be unset. Votes on resolved actions are
// recorded all the same; they just have no effect.
func (s *SQLiteStore) CastVote(ctx context.Context, actionID, voterID string, vote models.Vote) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE action_votes SET vote = ? WHERE action_id = ? AND voter_id = ? AND vote = 'unset'",
		vote.String(), actionID, voterID,
	)
	if err != nil {
		return fmt.Errorf("failed to cast vote: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to cast vote: %w", err)
	}
	if n == 1 {
		return nil
	}

	// Distinguish a missing slot from an already-set one.
	var existing string
	err = s.db.QueryRowContext(ctx,
		"SELECT vote FROM action_votes WHERE action_id = ? AND voter_id = ?",
		actionID, voterID,
	).Scan(&existing)
	if err == sql.ErrNoRows {
		return storage.ErrNotEligible
	}
	if err != nil {
		return fmt.Errorf("failed to check vote: %w", err)
	}
	return storage.ErrAlreadyVoted
}

// casActionStatus flips a pending action to the given terminal status within
// the caller's transaction. Returns ErrActionResolved if the action has
// already left Pending, which is what makes resolution at-most-once.
func casActionStatus(ctx context.Context, tx *sql.Tx, actionID string, status models.ActionStatus) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE pending_actions SET status = ? WHERE id = ? AND status = ?",
		status, actionID, models.ActionPending,
	)
	if err != nil {
		return fmt.Errorf("failed to update action status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update action status: %w", err)
	}
	if n == 0 {
		return storage.ErrActionResolved
	}
	return nil
}

// ConfirmExpenseAction flips the action to Confirmed and materializes the
// expense, its debts, and any wallet share rows in the same transaction.
// When requiredWalletFunds is positive the group balance is re-checked inside
// the transaction so a concurrent spend cannot overdraw the wallet.
func (s *SQLiteStore) ConfirmExpenseAction(ctx context.Context, actionID string, expense *models.Expense, shares []models.WalletTransaction, requiredWalletFunds float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := casActionStatus(ctx, tx, actionID, models.ActionConfirmed); err != nil {
		return err
	}

	if requiredWalletFunds > 0 {
		var balance sql.NullFloat64
		err := tx.QueryRowContext(ctx,
			"SELECT SUM(amount) FROM wallet_transactions WHERE group_id = ? AND status = ?",
			expense.GroupID, models.TransactionConfirmed,
		).Scan(&balance)
		if err != nil {
			return fmt.Errorf("failed to check wallet balance: %w", err)
		}
		if balance.Float64 < requiredWalletFunds {
			return storage.ErrInsufficientWalletFunds
		}
	}

	if err := insertExpense(ctx, tx, expense); err != nil {
		return err
	}
	for i := range shares {
		if err := insertWalletTransaction(ctx, tx, &shares[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ConfirmDepositAction flips the action to Confirmed and appends the deposit
// row in the same transaction.
func (s *SQLiteStore) ConfirmDepositAction(ctx context.Context, actionID string, txn *models.WalletTransaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := casActionStatus(ctx, tx, actionID, models.ActionConfirmed); err != nil {
		return err
	}
	if err := insertWalletTransaction(ctx, tx, txn); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RejectAction flips a pending action to Rejected.
func (s *SQLiteStore) RejectAction(ctx context.Context, actionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := casActionStatus(ctx, tx, actionID, models.ActionRejected); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
