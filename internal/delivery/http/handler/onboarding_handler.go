package handler

import (
	"nanny-match/internal/delivery/http/dto"
	"nanny-match/internal/pkg/response"
	"nanny-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type OnboardingHandler struct {
	uc usecase.OnboardingUsecase
}

func NewOnboardingHandler(uc usecase.OnboardingUsecase) *OnboardingHandler {
	return &OnboardingHandler{uc: uc}
}

// RegisterRoutes mounts the registry reads. They must be registered before
// the generic /:table route so the named tables resolve here.
func (h *OnboardingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/onboarding_configs", h.ListConfigurations)
	r.Get("/onboarding_steps", h.ListSteps)
	r.Get("/onboarding_fields", h.ListFields)

	r.Get("/onboarding/configs/:role", h.DefaultConfiguration)
	r.Get("/onboarding/steps/:role", h.StepsByRole)
	r.Get("/onboarding/fields/:step_id", h.ActiveFields)
}

func (h *OnboardingHandler) ListConfigurations(c fiber.Ctx) error {
	out, err := h.uc.Configurations(c.Context(), usecase.ConfigQuery{
		TargetRole: c.Query("target_role"),
		IsDefault:  c.Query("is_default"),
		IsActive:   c.Query("is_active"),
	})
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewConfigurationResponses(out))
}

func (h *OnboardingHandler) ListSteps(c fiber.Ctx) error {
	out, err := h.uc.Steps(c.Context(), usecase.StepQuery{
		ConfigID: c.Query("config_id"),
		IsActive: c.Query("is_active"),
		OrderBy:  c.Query("order_by"),
	})
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStepResponses(out))
}

func (h *OnboardingHandler) ListFields(c fiber.Ctx) error {
	out, err := h.uc.Fields(c.Context(), usecase.FieldQuery{
		StepID:   c.Query("step_id"),
		IsActive: c.Query("is_active"),
		OrderBy:  c.Query("order_by"),
	})
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewFieldResponses(out))
}

func (h *OnboardingHandler) DefaultConfiguration(c fiber.Ctx) error {
	out, err := h.uc.DefaultConfigurations(c.Context(), c.Params("role"))
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewConfigurationResponses(out))
}

func (h *OnboardingHandler) StepsByRole(c fiber.Ctx) error {
	out, err := h.uc.StepsByRole(c.Context(), c.Params("role"))
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStepResponses(out))
}

func (h *OnboardingHandler) ActiveFields(c fiber.Ctx) error {
	out, err := h.uc.ActiveFields(c.Context(), c.Params("step_id"))
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewFieldResponses(out))
}
