// Package otp issues and checks one-time SMS codes. Codes live in Redis
// under a TTL; only their hash is stored.
package otp

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"nanny-match/internal/infrastructure/sms"

	"go.uber.org/zap"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrTooManyRequests = errors.New("otp requested too recently")
	ErrInvalidCode     = errors.New("invalid or expired code")
	ErrUnavailable     = errors.New("otp service unavailable")
)

const (
	DefaultPurpose = "registration"
	codeDigits     = 6
	maxAttempts    = 5
)

type Store interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	KeepTTLSetJSON(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

type record struct {
	Hash     string `json:"hash"`
	Attempts int    `json:"attempts"`
}

type Service struct {
	store  Store
	sender sms.Sender
	logger *zap.Logger

	ttl            time.Duration
	resendInterval time.Duration

	generate func() (string, error)
}

func NewService(store Store, sender sms.Sender, ttl, resendInterval time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:          store,
		sender:         sender,
		logger:         logger,
		ttl:            ttl,
		resendInterval: resendInterval,
		generate:       randomCode,
	}
}

var (
	phonePattern   = regexp.MustCompile(`^\+?[0-9]{9,15}$`)
	purposePattern = regexp.MustCompile(`^[a-z_]{1,32}$`)
)

func normalize(phone, purpose string) (string, string, error) {
	phone = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
	if !phonePattern.MatchString(phone) {
		return "", "", ErrInvalidInput
	}
	purpose = strings.ToLower(strings.TrimSpace(purpose))
	if purpose == "" {
		purpose = DefaultPurpose
	}
	if !purposePattern.MatchString(purpose) {
		return "", "", ErrInvalidInput
	}
	return phone, purpose, nil
}

func codeKey(phone, purpose string) string     { return "otp:code:" + purpose + ":" + phone }
func throttleKey(phone, purpose string) string { return "otp:throttle:" + purpose + ":" + phone }

func hashCode(code, phone, purpose string) string {
	h := sha256.Sum256([]byte(purpose + ":" + phone + ":" + code))
	return hex.EncodeToString(h[:])
}

// Send issues a fresh code for phone and purpose, replacing any pending one.
// A second request inside the resend interval is refused.
func (s *Service) Send(ctx context.Context, phone, purpose string) error {
	phone, purpose, err := normalize(phone, purpose)
	if err != nil {
		return err
	}

	ok, err := s.store.SetIfNotExists(ctx, throttleKey(phone, purpose), "1", s.resendInterval)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !ok {
		return ErrTooManyRequests
	}

	code, err := s.generate()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	if err := s.store.SetJSON(ctx, codeKey(phone, purpose), record{Hash: hashCode(code, phone, purpose)}, s.ttl); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	msg := fmt.Sprintf("Nanny Match code: %s. Valid for %d min.", code, int(s.ttl.Minutes()))
	if err := s.sender.Send(ctx, phone, msg); err != nil {
		_ = s.store.Delete(ctx, codeKey(phone, purpose))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.logger.Info("otp sent", zap.String("phone", sms.MaskPhone(phone)), zap.String("purpose", purpose))
	return nil
}

// Verify consumes the pending code on success. Each miss counts against the
// code; after maxAttempts misses it is discarded.
func (s *Service) Verify(ctx context.Context, phone, code, purpose string) error {
	phone, purpose, err := normalize(phone, purpose)
	if err != nil {
		return err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrInvalidCode
	}

	var rec record
	found, err := s.store.GetJSON(ctx, codeKey(phone, purpose), &rec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !found {
		return ErrInvalidCode
	}

	want := []byte(rec.Hash)
	got := []byte(hashCode(code, phone, purpose))
	if subtle.ConstantTimeCompare(want, got) == 1 {
		_ = s.store.Delete(ctx, codeKey(phone, purpose))
		s.logger.Info("otp verified", zap.String("phone", sms.MaskPhone(phone)), zap.String("purpose", purpose))
		return nil
	}

	rec.Attempts++
	if rec.Attempts >= maxAttempts {
		_ = s.store.Delete(ctx, codeKey(phone, purpose))
		s.logger.Warn("otp discarded after failed attempts", zap.String("phone", sms.MaskPhone(phone)))
		return ErrInvalidCode
	}
	if err := s.store.KeepTTLSetJSON(ctx, codeKey(phone, purpose), rec); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return ErrInvalidCode
}

func randomCode() (string, error) {
	upper := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		upper.Mul(upper, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, upper)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}
