package order

import (
	"strings"
	"testing"
)

// stubRepo echoes back whatever it is asked to create.
type stubRepo struct {
	created *Order
}

func (r *stubRepo) Create(ord Order) (Order, error) {
	ord.OrderID = 42
	r.created = &ord
	return ord, nil
}

func (r *stubRepo) GetByNumber(orderNumber string) (Order, error) {
	if r.created != nil && r.created.OrderNumber == orderNumber {
		return *r.created, nil
	}
	return Order{}, ErrNotFound
}

func (r *stubRepo) ListByIDs(ids []int) ([]Order, error) {
	return []Order{}, nil
}

func validCreateRequest() CreateRequest {
	return CreateRequest{
		BoutiqueID:   7,
		CustomerName: "Jean Ndong",
		Phone:        "074123456",
		Address:      "Quartier Louis, rue 12",
		Commune:      "Libreville",
		Items: []Item{
			{ProductID: 1, Name: "Pagne wax", Quantity: 2, UnitPrice: 5000},
		},
		DeliveryFee: 1000,
		Taxes:       495,
	}
}

func TestCreate_AssignsNumberAndTotals(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	ord, err := svc.Create(validCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(ord.OrderNumber, "CMD-") || len(ord.OrderNumber) != 12 {
		t.Errorf("unexpected order number %q", ord.OrderNumber)
	}
	if ord.Subtotal != 10000 {
		t.Errorf("expected subtotal 10000, got %d", ord.Subtotal)
	}
	if ord.Total != 11495 {
		t.Errorf("expected total 11495, got %d", ord.Total)
	}
	if ord.Status != StatusAwaitingPayment {
		t.Errorf("expected status %q, got %q", StatusAwaitingPayment, ord.Status)
	}
}

func TestCreate_RejectsIncompleteAddress(t *testing.T) {
	svc := NewService(&stubRepo{})

	req := validCreateRequest()
	req.Commune = ""
	if _, err := svc.Create(req); err == nil {
		t.Fatal("expected error for missing commune")
	}
}

func TestCreate_RejectsEmptyCart(t *testing.T) {
	svc := NewService(&stubRepo{})

	req := validCreateRequest()
	req.Items = nil
	if _, err := svc.Create(req); err == nil {
		t.Fatal("expected error for empty cart")
	}
}
