package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/0PeterAdel/Money-Management/internal/models"
	"github.com/0PeterAdel/Money-Management/internal/storage"
)

const debtColumns = `d.id, d.expense_id, d.debtor_id, d.creditor_id, d.amount, d.settled, e.created_at`

// scanDebts reads debt rows (joined with their expense for the timestamp)
// and attaches payments in one follow-up query.
func (s *SQLiteStore) scanDebts(ctx context.Context, rows *sql.Rows) ([]*models.Debt, error) {
	var debts []*models.Debt
	byID := make(map[string]*models.Debt)
	for rows.Next() {
		debt := &models.Debt{}
		var settled int
		if err := rows.Scan(&debt.ID, &debt.ExpenseID, &debt.DebtorID, &debt.CreditorID,
			&debt.Amount, &settled, &debt.ExpenseCreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debt.Settled = settled != 0
		debts = append(debts, debt)
		byID[debt.ID] = debt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}
	if len(debts) == 0 {
		return debts, nil
	}

	ids := make([]interface{}, len(debts))
	for i, d := range debts {
		ids[i] = d.ID
	}
	payRows, err := s.db.QueryContext(ctx,
		"SELECT id, debt_id, amount, created_at FROM payments WHERE debt_id IN (?"+
			repeatPlaceholder(len(ids)-1)+") ORDER BY created_at, id",
		ids...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	defer payRows.Close()

	for payRows.Next() {
		var p models.Payment
		if err := payRows.Scan(&p.ID, &p.DebtID, &p.Amount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if debt, ok := byID[p.DebtID]; ok {
			debt.Payments = append(debt.Payments, p)
		}
	}
	if err := payRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return debts, nil
}

func (s *SQLiteStore) queryDebts(ctx context.Context, query string, args ...interface{}) ([]*models.Debt, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer rows.Close()
	return s.scanDebts(ctx, rows)
}

// GetDebt retrieves a debt by ID including its payments.
func (s *SQLiteStore) GetDebt(ctx context.Context, id string) (*models.Debt, error) {
	debts, err := s.queryDebts(ctx,
		"SELECT "+debtColumns+" FROM debts d JOIN expenses e ON e.id = d.expense_id WHERE d.id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(debts) == 0 {
		return nil, storage.ErrNotFound
	}
	return debts[0], nil
}

// ListDebts returns every debt with its payments, newest expense first.
func (s *SQLiteStore) ListDebts(ctx context.Context) ([]*models.Debt, error) {
	return s.queryDebts(ctx,
		"SELECT "+debtColumns+" FROM debts d JOIN expenses e ON e.id = d.expense_id ORDER BY e.created_at DESC, d.id")
}

// ListUnsettledDebts returns all open debts across every group.
func (s *SQLiteStore) ListUnsettledDebts(ctx context.Context) ([]*models.Debt, error) {
	return s.queryDebts(ctx,
		"SELECT "+debtColumns+" FROM debts d JOIN expenses e ON e.id = d.expense_id WHERE d.settled = 0 ORDER BY e.created_at, d.id")
}

// ListUnsettledGroupDebts returns open debts owed by the given debtors in the
// group, ordered by originating-expense date ascending. The wallet settlement
// executor depends on that order.
func (s *SQLiteStore) ListUnsettledGroupDebts(ctx context.Context, groupID string, debtorIDs []string) ([]*models.Debt, error) {
	if len(debtorIDs) == 0 {
		return nil, nil
	}
	args := make([]interface{}, 0, len(debtorIDs)+1)
	args = append(args, groupID)
	for _, id := range debtorIDs {
		args = append(args, id)
	}
	return s.queryDebts(ctx,
		"SELECT "+debtColumns+` FROM debts d
		 JOIN expenses e ON e.id = d.expense_id
		 WHERE e.group_id = ? AND d.settled = 0 AND d.debtor_id IN (?`+
			repeatPlaceholder(len(debtorIDs)-1)+`)
		 ORDER BY e.created_at, d.id`,
		args...,
	)
}

// AddPayment appends a payment to a debt, failing if the amount exceeds the
// remaining balance, and flips the settled flag when the remainder is within
// the settle tolerance. The check and both writes share one transaction.
func (s *SQLiteStore) AddPayment(ctx context.Context, debtID string, amount float64) (*models.Payment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var total float64
	var paid sql.NullFloat64
	err = tx.QueryRowContext(ctx,
		`SELECT d.amount, (SELECT SUM(p.amount) FROM payments p WHERE p.debt_id = d.id)
		 FROM debts d WHERE d.id = ?`, debtID,
	).Scan(&total, &paid)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load debt: %w", err)
	}

	remaining := math.Round((total-paid.Float64)*100) / 100
	if amount > remaining {
		return nil, storage.ErrAmountExceedsRemaining
	}

	payment := &models.Payment{
		ID:        uuid.New().String(),
		DebtID:    debtID,
		Amount:    amount,
		CreatedAt: time.Now().Unix(),
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO payments (id, debt_id, amount, created_at) VALUES (?, ?, ?, ?)",
		payment.ID, payment.DebtID, payment.Amount, payment.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	if remaining-amount <= models.SettleEpsilon {
		if _, err := tx.ExecContext(ctx, "UPDATE debts SET settled = 1 WHERE id = ?", debtID); err != nil {
			return nil, fmt.Errorf("failed to mark debt settled: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return payment, nil
}

// insertExpense writes the expense row and its debts within the caller's
// transaction.
func insertExpense(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	var payerID interface{}
	if expense.PayerID != "" {
		payerID = expense.PayerID
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (id, description, total_amount, payer_id, group_id, category_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Description, expense.TotalAmount, payerID,
		expense.GroupID, expense.CategoryID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range expense.Debts {
		debt := &expense.Debts[i]
		_, err = tx.ExecContext(ctx,
			"INSERT INTO debts (id, expense_id, debtor_id, creditor_id, amount, settled) VALUES (?, ?, ?, ?, ?, 0)",
			debt.ID, debt.ExpenseID, debt.DebtorID, debt.CreditorID, debt.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert debt: %w", err)
		}
	}

	return nil
}
