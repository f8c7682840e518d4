package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"nanny-match/internal/domain/user"
)

type fakeUserRepo struct {
	byUserID map[uuid.UUID]user.User
	roles    map[uuid.UUID]string
	failWith error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUserID: map[uuid.UUID]user.User{}, roles: map[uuid.UUID]string{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User, role string) error {
	if f.failWith != nil {
		return f.failWith
	}
	u.Roles = []string{role}
	f.byUserID[u.UserID] = u
	f.roles[u.UserID] = role
	return nil
}

func (f *fakeUserRepo) GetByUserID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := f.byUserID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.byUserID {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUserRepo) GetByPhone(_ context.Context, phone string) (user.User, error) {
	for _, u := range f.byUserID {
		if u.Phone != nil && *u.Phone == phone {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUserRepo) ExistsByEmailOrPhone(ctx context.Context, email, phone *string) (bool, error) {
	if email != nil {
		if _, err := f.GetByEmail(ctx, *email); err == nil {
			return true, nil
		}
	}
	if phone != nil {
		if _, err := f.GetByPhone(ctx, *phone); err == nil {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := f.byUserID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.PasswordHash = hash
	f.byUserID[id] = u
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	s := NewService(repo)
	ctx := context.Background()

	u, err := s.Register(ctx, RegisterInput{Email: " Mom@Example.com ", Password: "supersecret", FirstName: "Anna"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.PasswordHash != "" {
		t.Fatalf("expected sanitized user")
	}
	if repo.roles[u.UserID] != user.RoleParent {
		t.Fatalf("expected default role parent, got %q", repo.roles[u.UserID])
	}
	if u.EmailOrEmpty() != "mom@example.com" {
		t.Fatalf("expected normalized email, got %q", u.EmailOrEmpty())
	}

	if _, err := s.Register(ctx, RegisterInput{Email: "mom@example.com", Password: "supersecret"}); !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}

	got, err := s.Login(ctx, LoginInput{Email: "MOM@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.UserID != u.UserID {
		t.Fatalf("logged in as wrong user")
	}
	if _, err := s.Login(ctx, LoginInput{Email: "mom@example.com", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "supersecret"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestRegister_ByPhoneAsNanny(t *testing.T) {
	repo := newFakeUserRepo()
	s := NewService(repo)
	ctx := context.Background()

	u, err := s.Register(ctx, RegisterInput{Phone: "+380 (50) 123-45-67", Password: "supersecret", Role: "Nanny"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.roles[u.UserID] != user.RoleNanny {
		t.Fatalf("expected nanny role, got %q", repo.roles[u.UserID])
	}
	if _, err := s.Login(ctx, LoginInput{Phone: "+380501234567", Password: "supersecret"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	s := NewService(newFakeUserRepo())
	ctx := context.Background()

	cases := []RegisterInput{
		{Password: "supersecret"},
		{Email: "a@example.com", Password: "short"},
		{Email: "a@example.com", Password: "supersecret", Role: "admin"},
	}
	for _, in := range cases {
		if _, err := s.Register(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}

func TestRegister_RaceMapsToAlreadyExists(t *testing.T) {
	repo := newFakeUserRepo()
	repo.failWith = user.ErrAlreadyExists
	s := NewService(repo)

	_, err := s.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "supersecret"})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}
