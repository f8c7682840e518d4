package handler

import (
	"strings"

	"nanny-match/internal/pkg/response"
	"nanny-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type TableHandler struct {
	uc usecase.TableUsecase
}

func NewTableHandler(uc usecase.TableUsecase) *TableHandler {
	return &TableHandler{uc: uc}
}

// RegisterRoutes mounts the generic reader. It captures every single-segment
// path, so it must be registered after all other routes of r.
func (h *TableHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:table", h.List)
}

func (h *TableHandler) List(c fiber.Ctx) error {
	q := usecase.TableQuery{
		Table:   c.Params("table"),
		OrderBy: c.Query("order_by"),
		Limit:   c.Query("limit"),
		Filters: make(map[string]string),
	}
	for k, v := range c.Queries() {
		if strings.Contains(k, "__") {
			q.Filters[k] = v
		}
	}

	rows, err := h.uc.List(c.Context(), q)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, rows)
}
