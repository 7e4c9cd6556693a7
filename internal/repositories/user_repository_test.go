package repositories

import (
	"errors"
	"fmt"
	"testing"

	"dsaprep/internal/models"
	"dsaprep/internal/testhelpers"
)

func newUserRepo(t *testing.T) *UserRepository {
	t.Helper()
	return &UserRepository{DB: testhelpers.SetupTestDB(t)}
}

func seedUser(t *testing.T, repo *UserRepository, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	if err := repo.CreateUser(user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := newUserRepo(t)
	seeded := seedUser(t, repo, "alice")

	byName, err := repo.GetUserByUsername("alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if byName.ID != seeded.ID {
		t.Fatalf("expected id %d, got %d", seeded.ID, byName.ID)
	}

	byEmail, err := repo.GetUserByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail.ID != seeded.ID {
		t.Fatalf("expected id %d, got %d", seeded.ID, byEmail.ID)
	}

	byID, err := repo.GetUserByID(fmt.Sprintf("%d", seeded.ID))
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID.Username != "alice" {
		t.Fatalf("expected alice, got %s", byID.Username)
	}
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := newUserRepo(t)

	if _, err := repo.GetUserByUsername("ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.GetUserByEmail("ghost@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.GetUserByID("999"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_CreateDuplicateUsername(t *testing.T) {
	repo := newUserRepo(t)
	seedUser(t, repo, "alice")

	dup := &models.User{Username: "alice", Email: "other@example.com", PasswordHash: "hash"}
	if err := repo.CreateUser(dup); err == nil {
		t.Fatal("expected unique constraint violation")
	}
}

func TestUserRepository_UpdateUser(t *testing.T) {
	repo := newUserRepo(t)
	seeded := seedUser(t, repo, "alice")

	updated, err := repo.UpdateUser(fmt.Sprintf("%d", seeded.ID), &models.User{Email: "new@example.com", Phone: "555"})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if updated.Email != "new@example.com" || updated.Phone != "555" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.Username != "alice" {
		t.Fatalf("zero-value fields must be skipped, username became %s", updated.Username)
	}
}

func TestUserRepository_DeleteUser(t *testing.T) {
	repo := newUserRepo(t)
	seeded := seedUser(t, repo, "alice")

	if err := repo.DeleteUser(fmt.Sprintf("%d", seeded.ID)); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if _, err := repo.GetUserByUsername("alice"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
	if err := repo.DeleteUser(fmt.Sprintf("%d", seeded.ID)); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for double delete, got %v", err)
	}
}
