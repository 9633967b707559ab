package order

import (
	"github.com/gofiber/fiber/v2"
)

// Handler delegates order operations to the order service.

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	// confirmation pages look orders up by number
	app.Get("/api/v1/orders/:number", h.getOrder)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	ord, err := h.service.GetByNumber(c.Params("number"))
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}
