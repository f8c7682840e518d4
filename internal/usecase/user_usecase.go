package usecase

import (
	"context"

	"nanny-match/internal/domain/user"
	ucuser "nanny-match/internal/usecase/user"

	"github.com/google/uuid"
)

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, in ucuser.UpdatePasswordInput) error
}

type User struct {
	svc *ucuser.Service
}

func NewUserUsecase(users user.Repository) *User {
	return &User{svc: ucuser.NewService(users)}
}

func (u *User) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return u.svc.GetMe(ctx, userID)
}

func (u *User) UpdatePassword(ctx context.Context, userID uuid.UUID, in ucuser.UpdatePasswordInput) error {
	return u.svc.UpdatePassword(ctx, userID, in)
}
