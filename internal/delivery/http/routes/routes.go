package routes

import (
	"nanny-match/internal/delivery/http/handler"
	"nanny-match/internal/delivery/http/middleware"
	v1 "nanny-match/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	dev    *handler.DevHandler
	devOn  bool
	v1     v1.Handlers
	authMw *middleware.AuthMiddleware
}

func NewRegistry(health *handler.HealthHandler, dev *handler.DevHandler, devEnabled bool, api v1.Handlers, authMw *middleware.AuthMiddleware) *Registry {
	return &Registry{health: health, dev: dev, devOn: devEnabled, v1: api, authMw: authMw}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerDev(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerDev(app *fiber.App) {
	if r.dev != nil {
		r.dev.RegisterRoutes(app.Group("/dev", middleware.DevOnly(r.devOn)))
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1, r.authMw)
}
