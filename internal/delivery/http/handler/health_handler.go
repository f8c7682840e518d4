package handler

import (
	"context"
	"time"

	"nanny-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const Version = "0.2.0"

// Pinger is anything whose liveness /health reports, such as the database
// pool or the cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	appName string
	checks  map[string]Pinger
	now     func() time.Time
}

func NewHealthHandler(appName string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{appName: appName, checks: checks, now: time.Now}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Root)
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Root(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"message":   h.appName,
		"version":   Version,
		"status":    "running",
		"timestamp": h.now().UTC(),
	})
}

// Health answers 200 when every dependency responds and 503 otherwise.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	checks := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			checks[name] = "down"
			status = "degraded"
			continue
		}
		checks[name] = "up"
	}

	data := fiber.Map{"status": status, "checks": checks, "timestamp": h.now().UTC()}
	if status != "healthy" {
		return response.Error(c, fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, data)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
