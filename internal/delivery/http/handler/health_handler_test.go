package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"nanny-match/internal/delivery/http/handler"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	up := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("refused") })

	cases := []struct {
		checks map[string]handler.Pinger
		want   int
	}{
		{map[string]handler.Pinger{"database": up}, http.StatusOK},
		{map[string]handler.Pinger{"database": up, "redis": down}, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		app := fiber.New()
		handler.NewHealthHandler("Nanny Match", tc.checks).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != tc.want {
			t.Fatalf("expected %d, got %d", tc.want, resp.StatusCode)
		}
	}

	app := fiber.New()
	handler.NewHealthHandler("Nanny Match", nil).RegisterRoutes(app)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("root: %v %v", err, resp)
	}
}
