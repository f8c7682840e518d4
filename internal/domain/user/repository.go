package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
)

type Repository interface {
	// Create stores the profile and its role in one transaction.
	Create(ctx context.Context, u User, role string) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByPhone(ctx context.Context, phone string) (User, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone *string) (bool, error)
	UpdatePasswordHash(ctx context.Context, userID uuid.UUID, hash string) error
}

// Directory lists accounts for public pages.
type Directory interface {
	// ActiveNannies returns available nannies, newest first.
	ActiveNannies(ctx context.Context, limit int) ([]NannySummary, error)
}
