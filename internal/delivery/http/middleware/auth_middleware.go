package middleware

import (
	"errors"
	"strings"

	"nanny-match/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type principalKey struct{}

// Principal is the caller identified by a valid access token.
type Principal struct {
	UserID uuid.UUID
	Email  string
}

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware rejects requests without a valid access token. Refresh tokens
// are refused here.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		p, err := m.authenticate(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}
		c.Locals(principalKey{}, p)
		return c.Next()
	}
}

func (m *AuthMiddleware) authenticate(header string) (Principal, error) {
	token, ok := BearerToken(header)
	if !ok {
		return Principal{}, NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	claims, err := m.jwt.ValidateToken(token, jwt.Access)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Principal{}, NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
	case err != nil:
		return Principal{}, NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
	}
	return Principal{UserID: claims.UserID, Email: claims.Email}, nil
}

// CurrentPrincipal returns the caller stored by AuthMiddleware.
func CurrentPrincipal(c fiber.Ctx) (Principal, bool) {
	p, ok := c.Locals(principalKey{}).(Principal)
	return p, ok && p.UserID != uuid.Nil
}

func UserID(c fiber.Ctx) (uuid.UUID, bool) {
	p, ok := CurrentPrincipal(c)
	return p.UserID, ok
}

// BearerToken extracts the credentials of an "Authorization: Bearer" header.
// The scheme is case-insensitive.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
