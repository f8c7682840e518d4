package handler

import (
	"nanny-match/internal/delivery/http/dto"
	"nanny-match/internal/pkg/response"
	"nanny-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type NannyHandler struct {
	uc usecase.NannyUsecase
}

func NewNannyHandler(uc usecase.NannyUsecase) *NannyHandler {
	return &NannyHandler{uc: uc}
}

// RegisterRoutes mounts the public nanny listing.
func (h *NannyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/nannies/simple", h.Simple)
}

func (h *NannyHandler) Simple(c fiber.Ctx) error {
	nannies, err := h.uc.Simple(c.Context(), c.Query("limit"))
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewNannyListResponse(nannies))
}
