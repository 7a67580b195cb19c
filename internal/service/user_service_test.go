package service

import (
	"context"
	"errors"
	"testing"

	"github.com/0PeterAdel/Money-Management/internal/auth"
	"github.com/0PeterAdel/Money-Management/internal/models"
	"github.com/0PeterAdel/Money-Management/internal/storage"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	store := newTestStore(t)
	users := NewUserService(store)
	ctx := context.Background()

	t.Run("Register trims name and hashes password", func(t *testing.T) {
		user, err := users.Register(ctx, "  Alice  ", "long-enough-password")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.Name != "Alice" {
			t.Errorf("Expected trimmed name Alice, got %q", user.Name)
		}
		if user.PasswordHash == "long-enough-password" || user.PasswordHash == "" {
			t.Error("Expected password to be hashed")
		}
	})

	t.Run("Duplicate name rejected", func(t *testing.T) {
		_, err := users.Register(ctx, "Alice", "another-password1")
		if !errors.Is(err, storage.ErrDuplicateName) {
			t.Errorf("Expected ErrDuplicateName, got %v", err)
		}
	})

	t.Run("Short password rejected", func(t *testing.T) {
		_, err := users.Register(ctx, "Bob", "short")
		if !errors.Is(err, auth.ErrWeakPassword) {
			t.Errorf("Expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("Authenticate succeeds with correct credentials", func(t *testing.T) {
		user, err := users.Authenticate(ctx, "Alice", "long-enough-password")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.Name != "Alice" {
			t.Errorf("Expected Alice, got %s", user.Name)
		}
	})

	t.Run("Unknown name and bad password both map to invalid credential", func(t *testing.T) {
		if _, err := users.Authenticate(ctx, "Nobody", "whatever-here"); !errors.Is(err, auth.ErrInvalidCredential) {
			t.Errorf("Expected ErrInvalidCredential, got %v", err)
		}
		if _, err := users.Authenticate(ctx, "Alice", "wrong-password-1"); !errors.Is(err, auth.ErrInvalidCredential) {
			t.Errorf("Expected ErrInvalidCredential, got %v", err)
		}
	})
}

func TestDeleteUser_Guards(t *testing.T) {
	store := newTestStore(t)
	users := NewUserService(store)
	ledger := NewLedgerService(store)
	actions := NewActionService(store, ledger)
	ctx := context.Background()

	t.Run("Open debt blocks deletion of both parties", func(t *testing.T) {
		alice := mustUser(t, store, "Alice")
		bob := mustUser(t, store, "Bob")
		group := mustGroup(t, store, "Flat", alice.ID, bob.ID)
		setupDebt(t, store, actions, group, alice.ID, bob.ID, 20)

		if err := users.Delete(ctx, bob.ID); !errors.Is(err, ErrUserHasDebts) {
			t.Errorf("Expected ErrUserHasDebts for debtor, got %v", err)
		}
		if err := users.Delete(ctx, alice.ID); !errors.Is(err, ErrUserHasDebts) {
			t.Errorf("Expected ErrUserHasDebts for creditor, got %v", err)
		}
	})

	t.Run("Nonzero wallet balance blocks deletion", func(t *testing.T) {
		carol := mustUser(t, store, "Carol")
		group := mustGroup(t, store, "Solo", carol.ID)
		if _, err := ledger.DepositDirect(ctx, group.ID, carol.ID, 5, ""); err != nil {
			t.Fatalf("DepositDirect failed: %v", err)
		}

		if err := users.Delete(ctx, carol.ID); !errors.Is(err, ErrUserHasBalance) {
			t.Errorf("Expected ErrUserHasBalance, got %v", err)
		}
	})

	t.Run("Open initiated action blocks deletion", func(t *testing.T) {
		dave := mustUser(t, store, "Dave")
		eve := mustUser(t, store, "Eve")
		group := mustGroup(t, store, "Pair", dave.ID, eve.ID)
		_, err := actions.ProposeDeposit(ctx, dave.ID, &models.DepositProposal{
			GroupID: group.ID, UserID: dave.ID, Amount: 10,
		})
		if err != nil {
			t.Fatalf("ProposeDeposit failed: %v", err)
		}

		if err := users.Delete(ctx, dave.ID); !errors.Is(err, ErrUserHasOpenActions) {
			t.Errorf("Expected ErrUserHasOpenActions, got %v", err)
		}
	})

	t.Run("Clean user deletes", func(t *testing.T) {
		frank := mustUser(t, store, "Frank")
		if err := users.Delete(ctx, frank.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := users.Get(ctx, frank.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after deletion, got %v", err)
		}
	})
}
