package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/0PeterAdel/Money-Management/internal/models"
	"github.com/0PeterAdel/Money-Management/internal/storage"
	"github.com/0PeterAdel/Money-Management/internal/storage/sqlite"
)

// newTestStore creates a SQLite store backed by a temp file, removed when the
// test finishes.
func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "ledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustUser(t *testing.T, store storage.Store, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, PasswordHash: "not-a-real-hash"}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", name, err)
	}
	return user
}

func mustGroup(t *testing.T, store storage.Store, name string, memberIDs ...string) *models.Group {
	t.Helper()
	group := &models.Group{Name: name, MemberIDs: memberIDs}
	if err := store.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("CreateGroup(%s) failed: %v", name, err)
	}
	return group
}
