package service

import (
	"context"
	"errors"
	"testing"

	"github.com/0PeterAdel/Money-Management/internal/auth"
	"github.com/0PeterAdel/Money-Management/internal/models"
)

func TestDepositDirect_RequiresMembership(t *testing.T) {
	store := newTestStore(t)
	ledger := NewLedgerService(store)
	ctx := context.Background()

	alice := mustUser(t, store, "Alice")
	outsider := mustUser(t, store, "Mallory")
	group := mustGroup(t, store, "Solo", alice.ID)

	if _, err := ledger.DepositDirect(ctx, group.ID, outsider.ID, 10, ""); err != ErrNotGroupMember {
		t.Errorf("Expected ErrNotGroupMember, got %v", err)
	}
	if _, err := ledger.DepositDirect(ctx, group.ID, alice.ID, 0, ""); err != ErrAmountNotPositive {
		t.Errorf("Expected ErrAmountNotPositive, got %v", err)
	}

	txn, err := ledger.DepositDirect(ctx, group.ID, alice.ID, 25.5, "Rent pool")
	if err != nil {
		t.Fatalf("DepositDirect failed: %v", err)
	}
	if txn.Type != models.TransactionDeposit || txn.Amount != 25.5 {
		t.Errorf("Unexpected transaction: %+v", txn)
	}
}

func TestWithdraw(t *testing.T) {
	store := newTestStore(t)
	users := NewUserService(store)
	ledger := NewLedgerService(store)
	ctx := context.Background()

	alice, err := users.Register(ctx, "Alice", "correct-horse-battery")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	group := mustGroup(t, store, "Solo", alice.ID)
	if _, err := ledger.DepositDirect(ctx, group.ID, alice.ID, 50, ""); err != nil {
		t.Fatalf("DepositDirect failed: %v", err)
	}

	t.Run("Wrong password rejected", func(t *testing.T) {
		_, err := ledger.Withdraw(ctx, group.ID, alice.ID, "wrong-password", 10)
		if !errors.Is(err, auth.ErrInvalidCredential) {
			t.Errorf("Expected ErrInvalidCredential, got %v", err)
		}
	})

	t.Run("Amount above balance rejected", func(t *testing.T) {
		_, err := ledger.Withdraw(ctx, group.ID, alice.ID, "correct-horse-battery", 100)
		if !errors.Is(err, ErrInsufficientFunds) {
			t.Errorf("Expected ErrInsufficientFunds, got %v", err)
		}
	})

	t.Run("Valid withdrawal debits the balance", func(t *testing.T) {
		txn, err := ledger.Withdraw(ctx, group.ID, alice.ID, "correct-horse-battery", 30)
		if err != nil {
			t.Fatalf("Withdraw failed: %v", err)
		}
		if txn.Amount != -30 || txn.Type != models.TransactionWithdrawal {
			t.Errorf("Unexpected transaction: %+v", txn)
		}

		balance, err := store.WalletBalance(ctx, group.ID, alice.ID)
		if err != nil {
			t.Fatalf("WalletBalance failed: %v", err)
		}
		if balance != 20 {
			t.Errorf("Expected balance 20, got %v", balance)
		}
	})
}

func TestWalletBalances(t *testing.T) {
	store := newTestStore(t)
	ledger := NewLedgerService(store)
	ctx := context.Background()

	alice := mustUser(t, store, "Alice")
	bob := mustUser(t, store, "Bob")
	group := mustGroup(t, store, "Trip", alice.ID, bob.ID)

	if _, err := ledger.DepositDirect(ctx, group.ID, alice.ID, 40, ""); err != nil {
		t.Fatalf("DepositDirect failed: %v", err)
	}
	if _, err := ledger.DepositDirect(ctx, group.ID, bob.ID, 10, ""); err != nil {
		t.Fatalf("DepositDirect failed: %v", err)
	}

	report, err := ledger.WalletBalances(ctx, group.ID)
	if err != nil {
		t.Fatalf("WalletBalances failed: %v", err)
	}
	if report.Total != 50 {
		t.Errorf("Expected total 50, got %v", report.Total)
	}
	if len(report.Members) != 2 {
		t.Fatalf("Expected 2 member balances, got %d", len(report.Members))
	}

	var sum float64
	for _, m := range report.Members {
		sum += m.Balance
	}
	if sum != report.Total {
		t.Errorf("Member balances sum to %v, total is %v", sum, report.Total)
	}
}

func TestApplyPayment_RejectsNonPositive(t *testing.T) {
	store := newTestStore(t)
	ledger := NewLedgerService(store)

	if _, err := ledger.ApplyPayment(context.Background(), "any-debt", 0); err != ErrAmountNotPositive {
		t.Errorf("Expected ErrAmountNotPositive, got %v", err)
	}
}
