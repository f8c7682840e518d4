package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"nanny-match/internal/domain/user"
	ucauth "nanny-match/internal/usecase/auth"
)

type memRepo struct {
	users map[uuid.UUID]user.User
}

func (m *memRepo) Create(context.Context, user.User, string) error { return nil }

func (m *memRepo) GetByUserID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}

func (m *memRepo) GetByPhone(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}

func (m *memRepo) ExistsByEmailOrPhone(context.Context, *string, *string) (bool, error) {
	return false, nil
}

func (m *memRepo) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := m.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.PasswordHash = hash
	m.users[id] = u
	return nil
}

func seeded(t *testing.T) (*memRepo, uuid.UUID) {
	t.Helper()
	hash, err := ucauth.HashPassword("old-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	id := uuid.New()
	return &memRepo{users: map[uuid.UUID]user.User{id: {UserID: id, PasswordHash: hash}}}, id
}

func TestGetMe(t *testing.T) {
	repo, id := seeded(t)
	s := NewService(repo)

	u, err := s.GetMe(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.PasswordHash != "" {
		t.Fatalf("expected password hash to be stripped")
	}
	if _, err := s.GetMe(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	repo, id := seeded(t)
	s := NewService(repo)
	ctx := context.Background()

	err := s.UpdatePassword(ctx, id, UpdatePasswordInput{CurrentPassword: "nope-nope", NewPassword: "new-password"})
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	err = s.UpdatePassword(ctx, id, UpdatePasswordInput{CurrentPassword: "old-password", NewPassword: "short"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := s.UpdatePassword(ctx, id, UpdatePasswordInput{CurrentPassword: "old-password", NewPassword: "new-password"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !ucauth.CheckPassword(repo.users[id].PasswordHash, "new-password") {
		t.Fatalf("expected stored hash to match new password")
	}
}
