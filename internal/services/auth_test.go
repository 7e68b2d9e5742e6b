package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"resumate/backend/internal/models"
	"resumate/backend/internal/repositories"
)

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User), nextID: 1}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*models.User, error) {
	if user, ok := f.users[username]; ok {
		return user, nil
	}
	return nil, fmt.Errorf("user %q: %w", username, repositories.ErrNotFound)
}

func (f *fakeUserRepo) FindByID(id uint) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, repositories.ErrNotFound)
}

func (f *fakeUserRepo) TouchLastLogin(id uint) error {
	for _, user := range f.users {
		if user.ID == id {
			now := time.Now()
			user.LastLogin = &now
			return nil
		}
	}
	return repositories.ErrNotFound
}

func newTestAuthService(repo repositories.UserRepository) AuthService {
	return NewAuthService(repo, "test-secret", "test-issuer", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	auth := newTestAuthService(repo)

	user, err := auth.Register("alice", "s3cret")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.PasswordHash == "s3cret" {
		t.Fatal("password must not be stored in plaintext")
	}

	token, err := auth.Login("alice", "s3cret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}

	userID, err := auth.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("token user id %d, want %d", userID, user.ID)
	}

	stored := repo.users["alice"]
	if stored.LastLogin == nil {
		t.Fatal("login should touch last_login")
	}
}

func TestRegisterRejectsDuplicatesAndBlanks(t *testing.T) {
	auth := newTestAuthService(newFakeUserRepo())

	if _, err := auth.Register("alice", "pw"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := auth.Register("alice", "pw2"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for duplicate username, got %v", err)
	}
	if _, err := auth.Register("", "pw"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank username, got %v", err)
	}
	if _, err := auth.Register("bob", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank password, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	auth := newTestAuthService(newFakeUserRepo())

	if _, err := auth.Register("alice", "correct"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := auth.Login("alice", "wrong"); err == nil {
		t.Fatal("expected error for wrong password")
	}
	if _, err := auth.Login("nobody", "pw"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	auth := newTestAuthService(newFakeUserRepo())

	if _, err := auth.ParseToken("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	repoA := newFakeUserRepo()
	authA := NewAuthService(repoA, "secret-a", "test-issuer", time.Hour)
	authB := NewAuthService(newFakeUserRepo(), "secret-b", "test-issuer", time.Hour)

	if _, err := authA.Register("alice", "pw"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	token, err := authA.Login("alice", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := authB.ParseToken(token); err == nil {
		t.Fatal("token signed with a different secret must be rejected")
	}
}
