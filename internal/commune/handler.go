package commune

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler delegates commune operations to the commune service.

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/boutiques/:boutiqueId<[0-9]+>/communes", h.listCommunes)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/communes", h.createCommune)
	app.Patch("/api/v1/communes/:id<[0-9]+>", h.updateCommune)
	app.Patch("/api/v1/communes/:id<[0-9]+>/active", h.setActive)
}

func (h *Handler) listCommunes(c *fiber.Ctx) error {
	boutiqueID, err := strconv.Atoi(c.Params("boutiqueId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid boutiqueId"})
	}
	communes, err := h.service.ListActive(boutiqueID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(communes)
}

type communeRequest struct {
	BoutiqueID  int    `json:"boutiqueId"`
	Name        string `json:"name"`
	DeliveryFee int    `json:"deliveryFee"`
	EtaMinDays  int    `json:"etaMinDays"`
	EtaMaxDays  int    `json:"etaMaxDays"`
}

func (h *Handler) createCommune(c *fiber.Ctx) error {
	payload := new(communeRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	cm, err := h.service.Create(Commune{
		BoutiqueID:  payload.BoutiqueID,
		Name:        payload.Name,
		DeliveryFee: payload.DeliveryFee,
		EtaMinDays:  payload.EtaMinDays,
		EtaMaxDays:  payload.EtaMaxDays,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(cm)
}

func (h *Handler) updateCommune(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	payload := new(communeRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	cm, err := h.service.Update(Commune{
		CommuneID:   id,
		Name:        payload.Name,
		DeliveryFee: payload.DeliveryFee,
		EtaMinDays:  payload.EtaMinDays,
		EtaMaxDays:  payload.EtaMaxDays,
	})
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "commune not found"})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusOK).JSON(cm)
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

func (h *Handler) setActive(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	payload := new(setActiveRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.SetActive(id, payload.Active); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "commune not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusOK)
}
