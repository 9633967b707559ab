package transaction

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the ledger to the seller-admin interface.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/orders/:orderId<[0-9]+>/transactions", h.listByOrder)
}

func (h *Handler) listByOrder(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("orderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid orderId"})
	}
	txs, err := h.service.ListByOrder(orderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(txs)
}
