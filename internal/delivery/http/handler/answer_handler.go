package handler

import (
	"nanny-match/internal/delivery/http/dto"
	"nanny-match/internal/delivery/http/middleware"
	"nanny-match/internal/pkg/response"
	"nanny-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AnswerHandler struct {
	uc usecase.AnswerUsecase
}

func NewAnswerHandler(uc usecase.AnswerUsecase) *AnswerHandler {
	return &AnswerHandler{uc: uc}
}

// RegisterRoutes mounts the answer endpoints; r must already require auth.
func (h *AnswerHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/onboarding/data", h.Save)
	r.Get("/onboarding/data", h.List)
}

func (h *AnswerHandler) Save(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.SaveAnswerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	v, err := req.AnswerValue()
	if err != nil {
		return err
	}

	saved, err := h.uc.Save(c.Context(), userID, usecase.AnswerInput{
		ConfigID:    req.ConfigID,
		StepKey:     req.StepKey,
		FieldKey:    req.FieldKey,
		Value:       v,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if saved.Inserted {
		status = fiber.StatusCreated
	}
	return response.Success(c, status, "Answer saved", dto.SaveAnswerResponse{
		AnswerResponse: dto.NewAnswerResponse(saved.Answer),
		Inserted:       saved.Inserted,
	})
}

func (h *AnswerHandler) List(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	out, err := h.uc.List(c.Context(), userID, c.Query("config_id"))
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAnswerResponses(out))
}
