package service

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/0PeterAdel/Money-Management/internal/auth"
	"github.com/0PeterAdel/Money-Management/internal/models"
	"github.com/0PeterAdel/Money-Management/internal/storage"
)

// UserService handles account registration, authentication, and the
// integrity-guarded deletion path.
type UserService struct {
	store storage.Store
}

// NewUserService creates a UserService over the given store.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// Register creates a new account with a bcrypt-hashed password. Names are
// unique; registration fails on a duplicate.
func (s *UserService) Register(ctx context.Context, name, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Name: name, PasswordHash: hash}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("User registered", "user_id", user.ID, "name", user.Name)
	return user, nil
}

// Authenticate verifies name and password, returning the user if valid.
// Lookup and hash failures both surface auth.ErrInvalidCredential.
func (s *UserService) Authenticate(ctx context.Context, name, password string) (*models.User, error) {
	user, err := s.store.GetUserByName(ctx, name)
	if err != nil {
		return nil, auth.ErrInvalidCredential
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.store.ListUsers(ctx)
}

// Delete removes a user unless they still have unsettled debts, a nonzero
// wallet balance in any group, or initiated-but-unresolved actions.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.GetUser(ctx, id); err != nil {
		return err
	}

	hasDebts, err := s.store.UserHasUnsettledDebts(ctx, id)
	if err != nil {
		return err
	}
	if hasDebts {
		return ErrUserHasDebts
	}

	total, err := s.store.UserWalletTotal(ctx, id)
	if err != nil {
		return err
	}
	if math.Abs(total) >= models.SettleEpsilon {
		return ErrUserHasBalance
	}

	open, err := s.store.UserHasOpenActions(ctx, id)
	if err != nil {
		return err
	}
	if open {
		return ErrUserHasOpenActions
	}

	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	slog.Info("User deleted", "user_id", id)
	return nil
}
