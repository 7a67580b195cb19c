package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/0PeterAdel/Money-Management/internal/models"
	"github.com/0PeterAdel/Money-Management/internal/storage"
)

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	var telegramID interface{}
	if user.TelegramID != "" {
		telegramID = user.TelegramID
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, password_hash, telegram_id, created_at) VALUES (?, ?, ?, ?, ?)",
		user.ID, user.Name, user.PasswordHash, telegramID, user.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrDuplicateName
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *SQLiteStore) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var telegramID sql.NullString
	err := row.Scan(&user.ID, &user.Name, &user.PasswordHash, &telegramID, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	if telegramID.Valid {
		user.TelegramID = telegramID.String
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, password_hash, telegram_id, created_at FROM users WHERE id = ?", id)
	return s.scanUser(row)
}

// GetUserByName retrieves a user by their unique display name.
func (s *SQLiteStore) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, password_hash, telegram_id, created_at FROM users WHERE name = ?", name)
	return s.scanUser(row)
}

// ListUsers returns all users ordered by name.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, password_hash, telegram_id, created_at FROM users ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		var telegramID sql.NullString
		if err := rows.Scan(&user.ID, &user.Name, &user.PasswordHash, &telegramID, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		if telegramID.Valid {
			user.TelegramID = telegramID.String
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// DeleteUser removes a user. Integrity guards (open debts, balances, open
// actions) are enforced by the service layer before this call.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// UserHasUnsettledDebts reports whether the user appears on any open debt.
func (s *SQLiteStore) UserHasUnsettledDebts(ctx context.Context, userID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM debts WHERE (debtor_id = ? OR creditor_id = ?) AND settled = 0",
		userID, userID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count unsettled debts: %w", err)
	}
	return count > 0, nil
}

// UserWalletTotal sums the user's confirmed wallet rows across all groups.
func (s *SQLiteStore) UserWalletTotal(ctx context.Context, userID string) (float64, error) {
	var total sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		"SELECT SUM(amount) FROM wallet_transactions WHERE user_id = ? AND status = ?",
		userID, models.TransactionConfirmed,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum wallet transactions: %w", err)
	}
	return total.Float64, nil
}

// UserHasOpenActions reports whether the user initiated any pending action.
func (s *SQLiteStore) UserHasOpenActions(ctx context.Context, userID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pending_actions WHERE initiator_id = ? AND status = ?",
		userID, models.ActionPending,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count open actions: %w", err)
	}
	return count > 0, nil
}
