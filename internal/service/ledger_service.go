package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/0PeterAdel/Money-Management/internal/auth"
	"github.com/0PeterAdel/Money-Management/internal/calculator"
	"github.com/0PeterAdel/Money-Management/internal/models"
	"github.com/0PeterAdel/Money-Management/internal/storage"
)

// LedgerService materializes confirmed mutations and serves balance queries.
// Expense and voted-deposit recording happens only on behalf of a confirmed
// pending action; direct deposits, withdrawals and manual payments are
// synchronous because they move the acting user's own funds.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// ValidateExpenseProposal rejects malformed expense parameters before any
// action is created. The same checks guard the apply path.
func ValidateExpenseProposal(p *models.ExpenseProposal) error {
	if len(p.ParticipantIDs) == 0 {
		return ErrParticipantsEmpty
	}
	if p.TotalAmount <= 0 {
		return ErrAmountNotPositive
	}
	if p.PayerID != "" && p.FromWallet {
		return ErrPayerAmbiguous
	}
	if p.PayerID == "" && !p.FromWallet {
		return ErrNoPaymentMethod
	}
	return nil
}

// RecordConfirmedExpense applies a confirmed expense proposal: it resolves
// the category, splits the total into equal rounded shares, and materializes
// either one debt per non-payer participant or one negative wallet share per
// participant — atomically with the action's status flip.
func (s *LedgerService) RecordConfirmedExpense(ctx context.Context, actionID string, p *models.ExpenseProposal) (*models.Expense, error) {
	if err := ValidateExpenseProposal(p); err != nil {
		return nil, err
	}

	category, err := s.store.GetOrCreateCategory(ctx, p.CategoryName)
	if err != nil {
		return nil, err
	}

	share := calculator.EqualShare(p.TotalAmount, len(p.ParticipantIDs))
	expense := &models.Expense{
		ID:          uuid.New().String(),
		Description: p.Description,
		TotalAmount: p.TotalAmount,
		PayerID:     p.PayerID,
		GroupID:     p.GroupID,
		CategoryID:  category.ID,
		CreatedAt:   time.Now().Unix(),
	}

	var shares []models.WalletTransaction
	var requiredFunds float64
	if p.FromWallet {
		requiredFunds = p.TotalAmount
		for _, userID := range p.ParticipantIDs {
			shares = append(shares, models.WalletTransaction{
				GroupID:     p.GroupID,
				UserID:      userID,
				Amount:      -share,
				Type:        models.TransactionExpenseShare,
				Status:      models.TransactionConfirmed,
				Description: fmt.Sprintf("Share of: %s", p.Description),
			})
		}
	} else {
		for _, userID := range p.ParticipantIDs {
			if userID == p.PayerID {
				continue
			}
			expense.Debts = append(expense.Debts, models.Debt{
				ID:         uuid.New().String(),
				ExpenseID:  expense.ID,
				DebtorID:   userID,
				CreditorID: p.PayerID,
				Amount:     share,
			})
		}
	}

	if err := s.store.ConfirmExpenseAction(ctx, actionID, expense, shares, requiredFunds); err != nil {
		return nil, err
	}

	slog.Info("Expense recorded",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"total", expense.TotalAmount,
		"share", share,
		"wallet_funded", p.FromWallet,
	)
	return expense, nil
}

// RecordConfirmedDeposit applies a confirmed deposit proposal as a single
// confirmed deposit row, atomically with the action's status flip.
func (s *LedgerService) RecordConfirmedDeposit(ctx context.Context, actionID string, p *models.DepositProposal) (*models.WalletTransaction, error) {
	if p.Amount <= 0 {
		return nil, ErrAmountNotPositive
	}

	description := p.Description
	if description == "" {
		description = "Deposit"
	}
	txn := &models.WalletTransaction{
		GroupID:     p.GroupID,
		UserID:      p.UserID,
		Amount:      p.Amount,
		Type:        models.TransactionDeposit,
		Status:      models.TransactionConfirmed,
		Description: description,
	}

	if err := s.store.ConfirmDepositAction(ctx, actionID, txn); err != nil {
		return nil, err
	}

	slog.Info("Deposit recorded",
		"group_id", p.GroupID, "user_id", p.UserID, "amount", p.Amount)
	return txn, nil
}

// ApplyPayment records a manual partial payment against a debt. The storage
// layer enforces the remaining-amount ceiling and the settled flip.
func (s *LedgerService) ApplyPayment(ctx context.Context, debtID string, amount float64) (*models.Payment, error) {
	if amount <= 0 {
		return nil, ErrAmountNotPositive
	}
	payment, err := s.store.AddPayment(ctx, debtID, amount)
	if err != nil {
		return nil, err
	}
	slog.Info("Payment applied", "debt_id", debtID, "amount", amount)
	return payment, nil
}

// DebtHistory returns every debt with its payments and remaining amounts.
func (s *LedgerService) DebtHistory(ctx context.Context) ([]*models.Debt, error) {
	return s.store.ListDebts(ctx)
}

// DepositDirect appends a confirmed deposit without a voting round. It only
// moves the depositor's own money into the pool, so membership is the only
// gate.
func (s *LedgerService) DepositDirect(ctx context.Context, groupID, userID string, amount float64, description string) (*models.WalletTransaction, error) {
	if amount <= 0 {
		return nil, ErrAmountNotPositive
	}
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrNotGroupMember
	}

	if description == "" {
		description = "Deposit"
	}
	txn := &models.WalletTransaction{
		GroupID:     groupID,
		UserID:      userID,
		Amount:      amount,
		Type:        models.TransactionDeposit,
		Status:      models.TransactionConfirmed,
		Description: description,
	}
	if err := s.store.CreateWalletTransaction(ctx, txn); err != nil {
		return nil, err
	}

	slog.Info("Direct deposit", "group_id", groupID, "user_id", userID, "amount", amount)
	return txn, nil
}

// Withdraw debits the user's wallet balance after verifying their password.
// It fails with auth.ErrInvalidCredential on a hash mismatch and
// ErrInsufficientFunds when the amount exceeds the derived balance.
func (s *LedgerService) Withdraw(ctx context.Context, groupID, userID, password string, amount float64) (*models.WalletTransaction, error) {
	if amount <= 0 {
		return nil, ErrAmountNotPositive
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, err
	}

	balance, err := s.store.WalletBalance(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if amount > balance {
		return nil, ErrInsufficientFunds
	}

	txn := &models.WalletTransaction{
		GroupID:     groupID,
		UserID:      userID,
		Amount:      -amount,
		Type:        models.TransactionWithdrawal,
		Status:      models.TransactionConfirmed,
		Description: "User withdrawal",
	}
	if err := s.store.CreateWalletTransaction(ctx, txn); err != nil {
		return nil, err
	}

	slog.Info("Withdrawal", "group_id", groupID, "user_id", userID, "amount", amount)
	return txn, nil
}

// WalletReport is the per-member balance view of one group's wallet.
type WalletReport struct {
	GroupID string
	Total   float64
	Members []models.MemberBalance
}

// WalletBalances derives every member's balance and the group total. The
// total always equals the sum of member balances since both are sums over
// the same confirmed rows.
func (s *LedgerService) WalletBalances(ctx context.Context, groupID string) (*WalletReport, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	balances, err := s.store.GroupMemberBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}

	report := &WalletReport{GroupID: groupID}
	for _, memberID := range group.MemberIDs {
		balance := calculator.Round2(balances[memberID])
		report.Members = append(report.Members, models.MemberBalance{
			UserID:  memberID,
			Balance: balance,
		})
		report.Total += balance
	}
	report.Total = calculator.Round2(report.Total)
	return report, nil
}
