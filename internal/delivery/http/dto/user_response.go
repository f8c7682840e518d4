package dto

import (
	"time"

	"github.com/google/uuid"

	"nanny-match/internal/domain/user"
)

type UserProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserProfileResponse(u user.User) UserProfileResponse {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserProfileResponse{
		ID:        u.ID,
		UserID:    u.UserID,
		Email:     u.Email,
		Phone:     u.Phone,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Roles:     roles,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type AuthResponse struct {
	User UserProfileResponse `json:"user"`
	TokenPairResponse
}

func NewTokenPair(access, refresh string) TokenPairResponse {
	return TokenPairResponse{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}
}

type NannyCard struct {
	UserID    uuid.UUID `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	City      *string   `json:"city"`
}

type NannyListResponse struct {
	Nannies []NannyCard `json:"nannies"`
	Count   int         `json:"count"`
}

func NewNannyListResponse(in []user.NannySummary) NannyListResponse {
	out := NannyListResponse{Nannies: make([]NannyCard, 0, len(in)), Count: len(in)}
	for _, n := range in {
		out.Nannies = append(out.Nannies, NannyCard{
			UserID:    n.UserID,
			FirstName: n.FirstName,
			LastName:  n.LastName,
			City:      n.City,
		})
	}
	return out
}
