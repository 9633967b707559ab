package transaction

import "errors"

var (
	ErrNotFound = errors.New("transaction not found")
)

// Repository defines persistence operations for ledger records.
type Repository interface {
	Create(tx Transaction) (Transaction, error)
	ListByOrder(orderID int) ([]Transaction, error)
}
