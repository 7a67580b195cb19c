package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/0PeterAdel/Money-Management/internal/calculator"
	"github.com/0PeterAdel/Money-Management/internal/models"
	"github.com/0PeterAdel/Money-Management/internal/storage"
)

// SettlementService hosts the two settlement paths: the read-only planner
// that suggests external transfers, and the executor that pays debts down
// from existing wallet balances.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a SettlementService over the given store.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// BalanceSummary computes every user's net position — debts owed to them,
// minus debts they owe, plus their wallet balances — and reduces the
// positions to a suggested transfer list with the greedy planner. Read-only:
// nothing is written.
func (s *SettlementService) BalanceSummary(ctx context.Context) ([]models.Transfer, error) {
	net := make(map[string]float64)

	debts, err := s.store.ListUnsettledDebts(ctx)
	if err != nil {
		return nil, err
	}
	for _, debt := range debts {
		remaining := debt.Remaining()
		if remaining <= 0 {
			continue
		}
		net[debt.CreditorID] += remaining
		net[debt.DebtorID] -= remaining
	}

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	for _, group := range groups {
		balances, err := s.store.GroupMemberBalances(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		for userID, balance := range balances {
			net[userID] += balance
		}
	}

	return calculator.PlanTransfers(net), nil
}

// SettleFromWallet pays down unsettled debts in the group using wallet
// balances. targetUserID narrows the run to one debtor; empty means all
// members. Debts are processed in originating-expense order against an
// in-memory running balance seeded once at batch start, so a debt is either
// fully paid (debit, credit, payment, settled flag — one transaction) or
// skipped with an "Insufficient Funds" log line and no balance consumed.
// Running it again immediately yields an empty log.
func (s *SettlementService) SettleFromWallet(ctx context.Context, groupID, targetUserID string) ([]models.SettlementLog, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	var targetIDs []string
	if targetUserID != "" {
		if !group.HasMember(targetUserID) {
			return nil, ErrNotGroupMember
		}
		targetIDs = []string{targetUserID}
	} else {
		targetIDs = group.MemberIDs
	}

	balances, err := s.store.GroupMemberBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}
	debts, err := s.store.ListUnsettledGroupDebts(ctx, groupID, targetIDs)
	if err != nil {
		return nil, err
	}

	logs := make([]models.SettlementLog, 0, len(debts))
	for _, debt := range debts {
		remaining := debt.Remaining()
		if balances[debt.DebtorID] < remaining {
			logs = append(logs, models.SettlementLog{
				DebtID: debt.ID,
				Status: models.SettlementInsufficientFunds,
			})
			continue
		}

		debtor, err := s.store.GetUser(ctx, debt.DebtorID)
		if err != nil {
			return nil, err
		}
		creditor, err := s.store.GetUser(ctx, debt.CreditorID)
		if err != nil {
			return nil, err
		}

		debit := &models.WalletTransaction{
			GroupID:     groupID,
			UserID:      debt.DebtorID,
			Amount:      -remaining,
			Type:        models.TransactionSettlement,
			Status:      models.TransactionConfirmed,
			Description: fmt.Sprintf("Paid debt to %s", creditor.Name),
		}
		credit := &models.WalletTransaction{
			GroupID:     groupID,
			UserID:      debt.CreditorID,
			Amount:      remaining,
			Type:        models.TransactionSettlement,
			Status:      models.TransactionConfirmed,
			Description: fmt.Sprintf("Received settlement from %s", debtor.Name),
		}
		payment := &models.Payment{
			DebtID: debt.ID,
			Amount: remaining,
		}
		if err := s.store.SettleDebtFromWallet(ctx, debt.ID, debit, credit, payment); err != nil {
			return nil, err
		}

		balances[debt.DebtorID] -= remaining
		balances[debt.CreditorID] += remaining
		logs = append(logs, models.SettlementLog{
			DebtID:        debt.ID,
			AmountSettled: remaining,
			Status:        models.SettlementFullySettled,
		})
	}

	slog.Info("Wallet settlement run",
		"group_id", groupID, "debts_checked", len(debts), "settled", countSettled(logs))
	return logs, nil
}

func countSettled(logs []models.SettlementLog) int {
	n := 0
	for _, l := range logs {
		if l.Status == models.SettlementFullySettled {
			n++
		}
	}
	return n
}
