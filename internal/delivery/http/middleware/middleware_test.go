package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"nanny-match/internal/pkg/apperr"
	"nanny-match/internal/pkg/jwt"
)

func TestEnvelopeFor(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", apperr.Validation("op", "limit must be between 1 and 1000"), 400, "limit must be between 1 and 1000"},
		{"not found", apperr.NotFound("op", "unknown entity"), 404, "unknown entity"},
		{"storage", apperr.Storage("op", errors.New("password authentication failed")), 500, "internal server error"},
		{"app error", NewAppError(409, "User already registered", nil, nil), 409, "User already registered"},
		{"app 5xx hides message", NewAppError(503, "redis at 10.0.0.1 down", nil, nil), 503, "service unavailable"},
		{"fiber", fiber.ErrMethodNotAllowed, 405, "Method Not Allowed"},
		{"plain", errors.New("boom"), 500, "internal server error"},
	}
	for _, tc := range cases {
		env := envelopeFor(tc.err)
		if env.Status != tc.status || env.Message != tc.msg {
			t.Fatalf("%s: got %d %q, want %d %q", tc.name, env.Status, env.Message, tc.status, tc.msg)
		}
	}
}

func TestErrorMiddleware_RecoversPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	app := fiber.New()
	app.Use(NewErrorMiddleware(zap.New(core)).Middleware())
	app.Get("/boom", func(c fiber.Ctx) error { panic("kaboom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Fatalf("expected the panic to be logged")
	}
}

func TestAccessLog_RequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(zap.New(core)).Middleware())
	app.Get("/", func(c fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "rid-123")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.Header.Get(HeaderRequestID) != "rid-123" {
		t.Fatalf("expected request id to be echoed")
	}
	entries := logs.FilterMessage("http access").All()
	if len(entries) != 1 || entries[0].ContextMap()["request_id"] != "rid-123" {
		t.Fatalf("unexpected log entries: %+v", entries)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if _, err := uuid.Parse(resp.Header.Get(HeaderRequestID)); err != nil {
		t.Fatalf("expected generated uuid request id, got %q", resp.Header.Get(HeaderRequestID))
	}
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwt.NewHMACService("access", "refresh", time.Minute, time.Hour)
	userID := uuid.New()

	app := fiber.New(fiber.Config{ErrorHandler: NewErrorMiddleware(nil).ErrorHandler})
	app.Get("/me", NewAuthMiddleware(svc).Middleware(), func(c fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return errors.New("missing user")
		}
		if p, _ := CurrentPrincipal(c); p.Email != "parent@example.com" {
			return errors.New("missing email")
		}
		return c.SendString(id.String())
	})

	call := func(header string) int {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		return resp.StatusCode
	}

	access, _ := svc.GenerateAccessToken(userID, "parent@example.com")
	refresh, _ := svc.GenerateRefreshToken(userID)

	if got := call("Bearer " + access); got != http.StatusOK {
		t.Fatalf("expected 200 with access token, got %d", got)
	}
	if got := call("Bearer " + refresh); got != http.StatusUnauthorized {
		t.Fatalf("expected refresh token to be rejected, got %d", got)
	}
	if got := call(""); got != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", got)
	}
	if got := call("Basic abc"); got != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer scheme, got %d", got)
	}
}

func TestBearerToken(t *testing.T) {
	if tok, ok := BearerToken("  bearer   abc  "); !ok || tok != "abc" {
		t.Fatalf("got %q %v", tok, ok)
	}
	if _, ok := BearerToken("Bearer"); ok {
		t.Fatalf("expected missing token to fail")
	}
}
