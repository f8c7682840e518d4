package v1

import (
	"nanny-match/internal/delivery/http/handler"
	"nanny-match/internal/delivery/http/middleware"
	"nanny-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Onboarding *handler.OnboardingHandler
	Answers    *handler.AnswerHandler
	Tables     *handler.TableHandler
	Nannies    *handler.NannyHandler
	WS         *ws.Handler
}

// Register mounts the v1 API. Order matters: the generic table reader
// matches any single path segment and is mounted last.
func Register(r fiber.Router, h Handlers, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	authGroup := r.Group("/auth")
	if h.Auth != nil {
		h.Auth.RegisterRoutes(authGroup)
	}
	if h.User != nil && authMw != nil {
		h.User.RegisterRoutes(authGroup.Group("", authMw.Middleware()))
	}

	if h.WS != nil {
		h.WS.RegisterRoutes(r)
	}
	if h.Onboarding != nil {
		h.Onboarding.RegisterRoutes(r)
	}
	if h.Nannies != nil {
		h.Nannies.RegisterRoutes(r)
	}

	if authMw == nil {
		return
	}
	protected := r.Group("", authMw.Middleware())
	if h.Answers != nil {
		h.Answers.RegisterRoutes(protected)
	}
	if h.Tables != nil {
		h.Tables.RegisterRoutes(protected)
	}
}
