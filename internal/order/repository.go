package order

import "errors"

var (
	ErrNotFound = errors.New("order not found")
)

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ord Order) (Order, error)
	GetByNumber(orderNumber string) (Order, error)

	// ListByIDs returns the orders whose orderId is present in the provided
	// slice, in the same sequence. An empty slice yields an empty result
	// without touching the database.
	ListByIDs(ids []int) ([]Order, error)
}
