package service

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/0PeterAdel/Money-Management/internal/models"
	"github.com/0PeterAdel/Money-Management/internal/storage"
)

// defaultCategories are seeded once at startup so expense entry has a
// sensible vocabulary from the first request.
var defaultCategories = []string{
	"Food", "Rent", "Maintenance", "Network", "Groceries", "Transport", "Other",
}

// GroupService handles group lifecycle, membership with its integrity
// guards, and categories.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a GroupService over the given store.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// SeedCategories inserts the default categories if none exist yet.
func (s *GroupService) SeedCategories(ctx context.Context) error {
	existing, err := s.store.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, name := range defaultCategories {
		if _, err := s.store.GetOrCreateCategory(ctx, name); err != nil {
			return err
		}
	}
	slog.Info("Seeded default categories", "count", len(defaultCategories))
	return nil
}

// Create persists a new group. The creator becomes its first member.
func (s *GroupService) Create(ctx context.Context, name, description, creatorID string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	group := &models.Group{
		Name:        name,
		Description: description,
		MemberIDs:   []string{creatorID},
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, err
	}
	slog.Info("Group created", "group_id", group.ID, "name", group.Name)
	return group, nil
}

// Get returns a group with its members.
func (s *GroupService) Get(ctx context.Context, id string) (*models.Group, error) {
	return s.store.GetGroup(ctx, id)
}

// List returns all groups.
func (s *GroupService) List(ctx context.Context) ([]*models.Group, error) {
	return s.store.ListGroups(ctx)
}

// AddMember adds a user to a group. Duplicate membership is rejected.
func (s *GroupService) AddMember(ctx context.Context, groupID, userID string) error {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return err
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return err
	}
	if err := s.store.AddGroupMember(ctx, groupID, userID); err != nil {
		return err
	}
	slog.Info("Member added", "group_id", groupID, "user_id", userID)
	return nil
}

// RemoveMember removes a user from a group unless they still have open
// debts in the group or a nonzero wallet balance there.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, userID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.HasMember(userID) {
		return ErrNotGroupMember
	}

	open, err := s.store.GroupDebtsOpen(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if open {
		return ErrUserHasDebts
	}

	balance, err := s.store.WalletBalance(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if math.Abs(balance) >= models.SettleEpsilon {
		return ErrUserHasBalance
	}

	if err := s.store.RemoveGroupMember(ctx, groupID, userID); err != nil {
		return err
	}
	slog.Info("Member removed", "group_id", groupID, "user_id", userID)
	return nil
}

// Categories returns all expense categories ordered by name.
func (s *GroupService) Categories(ctx context.Context) ([]*models.Category, error) {
	return s.store.ListCategories(ctx)
}
