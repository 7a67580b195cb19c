package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/0PeterAdel/Money-Management/internal/models"
	"github.com/0PeterAdel/Money-Management/internal/storage"
)

// insertWalletTransaction writes one wallet row within the caller's
// transaction, filling in ID and timestamp if unset.
func insertWalletTransaction(ctx context.Context, tx *sql.Tx, txn *models.WalletTransaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.CreatedAt == 0 {
		txn.CreatedAt = time.Now().Unix()
	}
	if txn.Status == "" {
		txn.Status = models.TransactionConfirmed
	}

	var description interface{}
	if txn.Description != "" {
		description = txn.Description
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO wallet_transactions (id, group_id, user_id, amount, type, status, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.GroupID, txn.UserID, txn.Amount, txn.Type, txn.Status, description, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert wallet transaction: %w", err)
	}
	return nil
}

// CreateWalletTransaction appends a single wallet row.
func (s *SQLiteStore) CreateWalletTransaction(ctx context.Context, txn *models.WalletTransaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertWalletTransaction(ctx, tx, txn); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// WalletBalance sums the user's confirmed wallet rows within the group.
func (s *SQLiteStore) WalletBalance(ctx context.Context, groupID, userID string) (float64, error) {
	var total sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		"SELECT SUM(amount) FROM wallet_transactions WHERE group_id = ? AND user_id = ? AND status = ?",
		groupID, userID, models.TransactionConfirmed,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum wallet balance: %w", err)
	}
	return total.Float64, nil
}

// GroupWalletBalance sums all confirmed wallet rows of the group.
func (s *SQLiteStore) GroupWalletBalance(ctx context.Context, groupID string) (float64, error) {
	var total sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		"SELECT SUM(amount) FROM wallet_transactions WHERE group_id = ? AND status = ?",
		groupID, models.TransactionConfirmed,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum group wallet balance: %w", err)
	}
	return total.Float64, nil
}

// GroupMemberBalances returns the derived balance of every member with at
// least one confirmed row in the group. Members without rows are absent.
func (s *SQLiteStore) GroupMemberBalances(ctx context.Context, groupID string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, SUM(amount) FROM wallet_transactions
		 WHERE group_id = ? AND status = ? GROUP BY user_id`,
		groupID, models.TransactionConfirmed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query member balances: %w", err)
	}
	defer rows.Close()

	balances := make(map[string]float64)
	for rows.Next() {
		var userID string
		var balance float64
		if err := rows.Scan(&userID, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan member balance: %w", err)
		}
		balances[userID] = balance
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate member balances: %w", err)
	}

	return balances, nil
}

// SettleDebtFromWallet applies a wallet settlement as one transaction: the
// debtor's debit row, the creditor's credit row, the payment covering the
// debt's full remainder, and the settled flag.
func (s *SQLiteStore) SettleDebtFromWallet(ctx context.Context, debtID string, debit, credit *models.WalletTransaction, payment *models.Payment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertWalletTransaction(ctx, tx, debit); err != nil {
		return err
	}
	if err := insertWalletTransaction(ctx, tx, credit); err != nil {
		return err
	}

	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO payments (id, debt_id, amount, created_at) VALUES (?, ?, ?, ?)",
		payment.ID, payment.DebtID, payment.Amount, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement payment: %w", err)
	}

	res, err := tx.ExecContext(ctx, "UPDATE debts SET settled = 1 WHERE id = ? AND settled = 0", debtID)
	if err != nil {
		return fmt.Errorf("failed to mark debt settled: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark debt settled: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
