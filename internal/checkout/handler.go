package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/commune"
)

// CommuneResolver is the slice of the commune service the handler needs to
// turn a submitted commune id into a zone.
type CommuneResolver interface {
	GetByID(communeID int) (commune.Commune, error)
}

// Handler exposes the checkout engine over HTTP.
type Handler struct {
	orch     *Orchestrator
	verifier *Verifier
	communes CommuneResolver
}

func NewHandler(orch *Orchestrator, verifier *Verifier, communes CommuneResolver) *Handler {
	return &Handler{orch: orch, verifier: verifier, communes: communes}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout", h.submit)
	app.Get("/api/v1/checkout/:id", h.getSession)
	app.Post("/api/v1/checkout/:id/cancel", h.cancel)
	app.Post("/api/v1/checkout/verify-phone", h.verifyPhone)
	app.Get("/api/v1/checkout/verify-phone/:phone", h.verifyPhoneStatus)
	app.Post("/api/v1/checkout/fees", h.previewFees)
}

type submitRequest struct {
	BoutiqueID    int               `json:"boutiqueId"`
	BoutiqueSlug  string            `json:"boutiqueSlug"`
	Email         string            `json:"email"`
	Items         []CartLine        `json:"items"`
	Address       DeliveryAddress   `json:"address"`
	CommuneID     int               `json:"communeId"`
	Payment       *PaymentSelection `json:"payment"`
	PayOnDelivery bool              `json:"payOnDelivery"`
}

func (h *Handler) submit(c *fiber.Ctx) error {
	payload := new(submitRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.BoutiqueID <= 0 || payload.BoutiqueSlug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "boutique requise"})
	}
	if len(payload.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "panier vide"})
	}

	var zone *commune.Commune
	if payload.CommuneID > 0 {
		cm, err := h.communes.GetByID(payload.CommuneID)
		switch {
		case err == nil && cm.Active:
			zone = &cm
		case errors.Is(err, commune.ErrNotFound) || err == nil:
			// unknown or deactivated zone counts as no zone selected
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	verification, _ := h.verifier.StatusFor(payload.Address.Phone)

	sess, err := h.orch.Submit(Form{
		BoutiqueID:    payload.BoutiqueID,
		BoutiqueSlug:  payload.BoutiqueSlug,
		Email:         payload.Email,
		Lines:         payload.Items,
		Address:       payload.Address,
		Zone:          zone,
		Selection:     payload.Payment,
		PayOnDelivery: payload.PayOnDelivery,
	}, verification)
	if err != nil {
		var gateErr *GateError
		if errors.As(err, &gateErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(gateErr.Result)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusAccepted).JSON(sess.View())
}

func (h *Handler) getSession(c *fiber.Ctx) error {
	sess, ok := h.orch.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "session introuvable"})
	}
	return c.JSON(sess.View())
}

func (h *Handler) cancel(c *fiber.Ctx) error {
	err := h.orch.Cancel(c.Params("id"))
	switch {
	case err == nil:
		sess, _ := h.orch.Get(c.Params("id"))
		return c.JSON(sess.View())
	case errors.Is(err, ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "session introuvable"})
	case errors.Is(err, ErrNotAwaitingConfirmation):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

type verifyPhoneRequest struct {
	Phone string `json:"phone"`
}

// verifyPhone schedules a debounced WhatsApp check. Numbers that fail basic
// local-format validation never reach the verifier.
func (h *Handler) verifyPhone(c *fiber.Ctx) error {
	payload := new(verifyPhoneRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if len(payload.Phone) != 9 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "le numéro doit contenir 9 chiffres"})
	}
	h.verifier.Input(payload.Phone)
	status, message := h.verifier.StatusFor(payload.Phone)
	return c.JSON(fiber.Map{"status": status, "message": message})
}

func (h *Handler) verifyPhoneStatus(c *fiber.Ctx) error {
	status, message := h.verifier.StatusFor(c.Params("phone"))
	return c.JSON(fiber.Map{"status": status, "message": message})
}

type feesRequest struct {
	Subtotal      int  `json:"subtotal"`
	CommuneID     int  `json:"communeId"`
	PayOnDelivery bool `json:"payOnDelivery"`
}

// previewFees recomputes the fee breakdown for display as the buyer changes
// zone or payment mode.
func (h *Handler) previewFees(c *fiber.Ctx) error {
	payload := new(feesRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var zone *commune.Commune
	if payload.CommuneID > 0 {
		if cm, err := h.communes.GetByID(payload.CommuneID); err == nil && cm.Active {
			zone = &cm
		}
	}
	return c.JSON(ComputeFees(payload.Subtotal, zone, payload.PayOnDelivery))
}
