package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"nanny-match/internal/pkg/apperr"
	"nanny-match/internal/pkg/response"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       any
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data any, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

type ErrorMiddleware struct {
	logger *zap.Logger
}

func NewErrorMiddleware(logger *zap.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.Stack("stack"),
				)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		env := envelopeFor(err)
		if env.Status >= fiber.StatusInternalServerError {
			m.logger.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", env.Status),
				zap.Error(err),
			)
		}
		return c.Status(env.Status).JSON(env)
	}
}

// ErrorHandler is installed as the fiber app error handler so errors raised
// outside the middleware chain (routing, body limits) share the envelope.
func (m *ErrorMiddleware) ErrorHandler(c fiber.Ctx, err error) error {
	env := envelopeFor(err)
	return c.Status(env.Status).JSON(env)
}

// envelopeFor maps err onto the response envelope. Only AppError below 500
// and apperr validation/not-found messages reach the client; everything else
// is reported as a bare internal error.
func envelopeFor(err error) response.SemanticResponse {
	internal := response.New(fiber.StatusInternalServerError, "", nil)

	var appErr *AppError
	var fiberErr *fiber.Error
	switch {
	case err == nil:
		return internal

	case errors.As(err, &appErr):
		if appErr.StatusCode <= 0 {
			return internal
		}
		if appErr.StatusCode >= 500 {
			return response.New(appErr.StatusCode, "", nil)
		}
		return response.New(appErr.StatusCode, appErr.Message, appErr.Data)

	case apperr.IsValidation(err):
		return response.New(fiber.StatusBadRequest, apperr.PublicMessage(err), nil)

	case apperr.IsNotFound(err):
		return response.New(fiber.StatusNotFound, apperr.PublicMessage(err), nil)

	case errors.As(err, &fiberErr):
		if fiberErr.Code <= 0 || fiberErr.Code >= 500 {
			return internal
		}
		return response.New(fiberErr.Code, fiberErr.Message, nil)
	}
	return internal
}
