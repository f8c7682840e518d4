package user

import (
	"time"

	"github.com/google/uuid"
)

// User is an account as stored in profiles. UserID is the identity carried
// in tokens and referenced by every other table; ID is the profile row key.
type User struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Email        *string
	Phone        *string
	PasswordHash string
	FirstName    string
	LastName     string
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) EmailOrEmpty() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

const (
	RoleParent = "parent"
	RoleNanny  = "nanny"
)

// ValidRole reports whether role is one the questionnaire knows about.
func ValidRole(role string) bool {
	return role == RoleParent || role == RoleNanny
}

// NannySummary is the public card of a nanny account.
type NannySummary struct {
	UserID    uuid.UUID
	FirstName string
	LastName  string
	City      *string
	CreatedAt time.Time
}
