package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service provides business logic for orders.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Create validates the request, assigns an order number and persists the
// order. The order number becomes the payment reference for everything
// downstream: gateway bills, ledger rows and the confirmation page link.
func (s *Service) Create(req CreateRequest) (Order, error) {
	if req.BoutiqueID <= 0 {
		return Order{}, errors.New("invalid boutique")
	}
	if len(req.Items) == 0 {
		return Order{}, errors.New("empty cart")
	}
	if req.CustomerName == "" || req.Phone == "" || req.Address == "" || req.Commune == "" {
		return Order{}, errors.New("incomplete delivery address")
	}
	if req.DeliveryFee < 0 || req.Taxes < 0 || req.Discount < 0 {
		return Order{}, errors.New("fees must be non-negative")
	}

	subtotal := 0
	for _, it := range req.Items {
		if it.Quantity <= 0 || it.UnitPrice < 0 {
			return Order{}, errors.New("invalid cart line")
		}
		subtotal += it.Quantity * it.UnitPrice
	}

	now := time.Now().UTC().Format(time.RFC3339)
	ord := Order{
		OrderNumber:  newOrderNumber(),
		BoutiqueID:   req.BoutiqueID,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Address:      req.Address,
		Commune:      req.Commune,
		Instructions: req.Instructions,
		Items:        req.Items,
		Subtotal:     subtotal,
		DeliveryFee:  req.DeliveryFee,
		Taxes:        req.Taxes,
		Discount:     req.Discount,
		Total:        subtotal + req.DeliveryFee + req.Taxes - req.Discount,
		Status:       StatusAwaitingPayment,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.repo.Create(ord)
}

// GetByNumber returns the order behind a confirmation-page link.
func (s *Service) GetByNumber(orderNumber string) (Order, error) {
	if orderNumber == "" {
		return Order{}, ErrNotFound
	}
	return s.repo.GetByNumber(orderNumber)
}

func (s *Service) ListByIDs(ids []int) ([]Order, error) {
	return s.repo.ListByIDs(ids)
}

func newOrderNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("CMD-%s", id[:8])
}
