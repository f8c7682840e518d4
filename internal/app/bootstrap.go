package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"go.uber.org/zap"

	"nanny-match/internal/config"
	"nanny-match/internal/delivery/http/middleware"
	"nanny-match/internal/delivery/http/routes"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application on top of an already wired container.
func New(c *Container) *App {
	errMw := middleware.NewErrorMiddleware(c.Logger.Named("http"))
	f := fiber.New(fiber.Config{
		AppName:      c.Config.App.AppName,
		ErrorHandler: errMw.ErrorHandler,
	})

	registerGlobalMiddleware(f, errMw, c.Config, c.Logger)
	routes.NewRegistry(c.Health, c.Dev, c.Config.App.IsDevelopment(), c.API, c.AuthMw).Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, starts the websocket hub and returns a
// cleanup func that stops the hub and releases connections.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	go c.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, errMw *middleware.ErrorMiddleware, cfg config.Config, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(errMw.Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger.Named("access")).Middleware())
	app.Use(cors.New(cors.Config{AllowOrigins: corsOrigins(cfg.App.CORSAllowOrigins)}))
}

func corsOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
