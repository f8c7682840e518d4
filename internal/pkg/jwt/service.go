// Package jwt issues and checks the HS256 tokens used by the API. Access and
// refresh tokens are signed with different secrets and carry their kind, so
// one can never be accepted in place of the other.
package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	Access  TokenType = "access"
	Refresh TokenType = "refresh"

	Issuer = "nanny-match"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	TokenType TokenType `json:"token_type"`

	jwtlib.RegisteredClaims
}

type Service interface {
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	// ValidateToken verifies tok as a token of kind want. A token of the
	// other kind is ErrTokenInvalid.
	ValidateToken(tok string, want TokenType) (Claims, error)
}

type signingKey struct {
	secret []byte
	ttl    time.Duration
}

type HMACService struct {
	keys map[TokenType]signingKey
	now  func() time.Time
}

func NewHMACService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *HMACService {
	return &HMACService{
		keys: map[TokenType]signingKey{
			Access:  {secret: []byte(accessSecret), ttl: accessTTL},
			Refresh: {secret: []byte(refreshSecret), ttl: refreshTTL},
		},
		now: time.Now,
	}
}

func (s *HMACService) GenerateAccessToken(userID uuid.UUID, email string) (string, error) {
	return s.sign(Access, userID, email)
}

func (s *HMACService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return s.sign(Refresh, userID, "")
}

func (s *HMACService) key(t TokenType) (signingKey, error) {
	k, ok := s.keys[t]
	if !ok || len(k.secret) == 0 || k.ttl <= 0 {
		return signingKey{}, ErrTokenInvalid
	}
	return k, nil
}

func (s *HMACService) sign(t TokenType, userID uuid.UUID, email string) (string, error) {
	k, err := s.key(t)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	c := Claims{
		UserID:    userID,
		Email:     email,
		TokenType: t,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(k.ttl)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(k.secret)
}

func (s *HMACService) ValidateToken(tok string, want TokenType) (Claims, error) {
	k, err := s.key(want)
	if err != nil {
		return Claims{}, err
	}

	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(Issuer),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	parsed, err := p.ParseWithClaims(tok, &c, func(*jwtlib.Token) (any, error) {
		return k.secret, nil
	})
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	case err != nil, parsed == nil, !parsed.Valid:
		return Claims{}, ErrTokenInvalid
	}

	if c.TokenType != want || c.UserID == uuid.Nil {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
