package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"nanny-match/internal/domain/user"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
)

type RegisterInput struct {
	Email     string
	Phone     string
	Password  string
	Role      string
	FirstName string
	LastName  string
}

// LoginInput identifies the account by email, or by phone when email is
// empty.
type LoginInput struct {
	Email    string
	Phone    string
	Password string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email := optional(normalizeEmail(in.Email))
	phone := optional(normalizePhone(in.Phone))
	if email == nil && phone == nil {
		return user.User{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}

	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = user.RoleParent
	}
	if !user.ValidRole(role) {
		return user.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmailOrPhone(ctx, email, phone)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrUserAlreadyExists
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	}

	if err := s.users.Create(ctx, u, role); err != nil {
		if errors.Is(err, user.ErrAlreadyExists) {
			return user.User{}, ErrUserAlreadyExists
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetByUserID(ctx, u.UserID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return SanitizeUser(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	if in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	var (
		u   user.User
		err error
	)
	switch {
	case normalizeEmail(in.Email) != "":
		u, err = s.users.GetByEmail(ctx, normalizeEmail(in.Email))
	case normalizePhone(in.Phone) != "":
		u, err = s.users.GetByPhone(ctx, normalizePhone(in.Phone))
	default:
		return user.User{}, ErrInvalidCredentials
	}
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if !CheckPassword(u.PasswordHash, in.Password) {
		return user.User{}, ErrInvalidCredentials
	}

	return SanitizeUser(u), nil
}

func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

// IsValidPassword applies the registration password policy.
func IsValidPassword(pw string) bool { return isValidPassword(pw) }

func SanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
