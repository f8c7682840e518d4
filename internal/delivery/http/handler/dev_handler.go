package handler

import (
	"nanny-match/internal/pkg/response"
	"nanny-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DevHandler struct {
	uc usecase.DevUsecase
}

func NewDevHandler(uc usecase.DevUsecase) *DevHandler {
	return &DevHandler{uc: uc}
}

// RegisterRoutes expects r to be guarded by middleware.DevOnly.
func (h *DevHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/database-info", h.DatabaseInfo)
	r.Get("/database-test", h.DatabaseTest)
}

func (h *DevHandler) DatabaseInfo(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.uc.DatabaseInfo())
}

func (h *DevHandler) DatabaseTest(c fiber.Ctx) error {
	res, err := h.uc.DatabaseTest(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
