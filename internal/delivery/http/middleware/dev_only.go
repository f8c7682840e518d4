package middleware

import "github.com/gofiber/fiber/v3"

// DevOnly hides the wrapped routes outside development environments by
// answering 404, as if they were never registered.
func DevOnly(enabled bool) fiber.Handler {
	return func(c fiber.Ctx) error {
		if !enabled {
			return NewAppError(fiber.StatusNotFound, "", nil, nil)
		}
		return c.Next()
	}
}
