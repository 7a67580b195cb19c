package service

import (
	"context"
	"errors"
	"testing"

	"github.com/0PeterAdel/Money-Management/internal/storage"
)

func TestGroupLifecycle(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroupService(store)
	ctx := context.Background()

	alice := mustUser(t, store, "Alice")
	bob := mustUser(t, store, "Bob")

	t.Run("Create makes the creator the first member", func(t *testing.T) {
		group, err := groups.Create(ctx, "Flat", "Shared apartment", alice.ID)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if len(group.MemberIDs) != 1 || group.MemberIDs[0] != alice.ID {
			t.Errorf("Expected creator as sole member, got %v", group.MemberIDs)
		}
	})

	t.Run("Blank name rejected", func(t *testing.T) {
		if _, err := groups.Create(ctx, "   ", "", alice.ID); err != ErrNameRequired {
			t.Errorf("Expected ErrNameRequired, got %v", err)
		}
	})

	t.Run("AddMember requires existing user", func(t *testing.T) {
		group, err := groups.Create(ctx, "Trip", "", alice.ID)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if err := groups.AddMember(ctx, group.ID, "no-such-user"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		if err := groups.AddMember(ctx, group.ID, bob.ID); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
	})
}

func TestRemoveMember_Guards(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroupService(store)
	ledger := NewLedgerService(store)
	actions := NewActionService(store, ledger)
	ctx := context.Background()

	alice := mustUser(t, store, "Alice")
	bob := mustUser(t, store, "Bob")
	group := mustGroup(t, store, "Flat", alice.ID, bob.ID)

	t.Run("Non-member cannot be removed", func(t *testing.T) {
		carol := mustUser(t, store, "Carol")
		if err := groups.RemoveMember(ctx, group.ID, carol.ID); err != ErrNotGroupMember {
			t.Errorf("Expected ErrNotGroupMember, got %v", err)
		}
	})

	t.Run("Open debt in the group blocks removal", func(t *testing.T) {
		setupDebt(t, store, actions, group, alice.ID, bob.ID, 20)
		if err := groups.RemoveMember(ctx, group.ID, bob.ID); !errors.Is(err, ErrUserHasDebts) {
			t.Errorf("Expected ErrUserHasDebts, got %v", err)
		}

		// Paying the debt off clears the guard.
		debts, err := store.ListUnsettledGroupDebts(ctx, group.ID, []string{bob.ID})
		if err != nil {
			t.Fatalf("ListUnsettledGroupDebts failed: %v", err)
		}
		if _, err := store.AddPayment(ctx, debts[0].ID, 10); err != nil {
			t.Fatalf("AddPayment failed: %v", err)
		}
		if err := groups.RemoveMember(ctx, group.ID, bob.ID); err != nil {
			t.Errorf("Expected removal after settling, got %v", err)
		}
	})

	t.Run("Nonzero wallet balance blocks removal", func(t *testing.T) {
		if _, err := ledger.DepositDirect(ctx, group.ID, alice.ID, 5, ""); err != nil {
			t.Fatalf("DepositDirect failed: %v", err)
		}
		if err := groups.RemoveMember(ctx, group.ID, alice.ID); !errors.Is(err, ErrUserHasBalance) {
			t.Errorf("Expected ErrUserHasBalance, got %v", err)
		}
	})
}

func TestSeedCategories(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroupService(store)
	ctx := context.Background()

	if err := groups.SeedCategories(ctx); err != nil {
		t.Fatalf("SeedCategories failed: %v", err)
	}
	categories, err := groups.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(categories) != len(defaultCategories) {
		t.Fatalf("Expected %d categories, got %d", len(defaultCategories), len(categories))
	}

	// Seeding again must not duplicate.
	if err := groups.SeedCategories(ctx); err != nil {
		t.Fatalf("SeedCategories failed: %v", err)
	}
	categories, err = groups.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(categories) != len(defaultCategories) {
		t.Errorf("Expected seeding to be idempotent, got %d categories", len(categories))
	}
}
