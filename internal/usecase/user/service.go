package user

import (
	"context"
	"errors"

	"nanny-match/internal/domain/user"
	ucauth "nanny-match/internal/usecase/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrWrongPassword = errors.New("current password is incorrect")
	ErrNotFound      = errors.New("user not found")
	ErrInternal      = errors.New("internal error")
)

type UpdatePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return ucauth.SanitizeUser(usr), nil
}

func (s *Service) UpdatePassword(ctx context.Context, userID uuid.UUID, in UpdatePasswordInput) error {
	if !ucauth.IsValidPassword(in.NewPassword) {
		return ErrInvalidInput
	}

	usr, err := s.users.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	if !ucauth.CheckPassword(usr.PasswordHash, in.CurrentPassword) {
		return ErrWrongPassword
	}

	hash, err := ucauth.HashPassword(in.NewPassword)
	if err != nil {
		return ErrInternal
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	return nil
}
