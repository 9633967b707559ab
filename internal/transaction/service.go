package transaction

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service provides business logic for the transaction ledger.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// CreatePending writes one pending ledger record for a freshly initiated
// payment. tx.Reference is assigned here; tx.OperatorReference must carry
// the gateway bill handle.
func (s *Service) CreatePending(tx Transaction) (Transaction, error) {
	if tx.OrderID <= 0 {
		return Transaction{}, errors.New("invalid order")
	}
	if tx.Amount <= 0 {
		return Transaction{}, errors.New("amount must be positive")
	}
	if tx.OperatorReference == "" {
		return Transaction{}, errors.New("operator reference required")
	}
	tx.Reference = newReference()
	tx.Status = StatusPending
	tx.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Create(tx)
}

func (s *Service) ListByOrder(orderID int) ([]Transaction, error) {
	if orderID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListByOrder(orderID)
}

func newReference() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("TXN-%s", id[:10])
}
