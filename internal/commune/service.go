package commune

import (
	"errors"
	"time"
)

// Service provides business logic for communes.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// ListActive returns the active delivery zones for a boutique. A checkout
// session fetches this list once and treats it as immutable afterwards.
func (s *Service) ListActive(boutiqueID int) ([]Commune, error) {
	if boutiqueID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListActive(boutiqueID)
}

func (s *Service) GetByID(communeID int) (Commune, error) {
	if communeID <= 0 {
		return Commune{}, ErrNotFound
	}
	return s.repo.GetByID(communeID)
}

func (s *Service) Create(cm Commune) (Commune, error) {
	if cm.BoutiqueID <= 0 {
		return Commune{}, ErrNotFound
	}
	if cm.Name == "" {
		return Commune{}, errors.New("name required")
	}
	if cm.DeliveryFee < 0 {
		return Commune{}, errors.New("deliveryFee must be non-negative")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	cm.Active = true
	cm.CreatedAt = now
	cm.UpdatedAt = now
	return s.repo.Create(cm)
}

func (s *Service) Update(cm Commune) (Commune, error) {
	if cm.CommuneID <= 0 {
		return Commune{}, ErrNotFound
	}
	if cm.Name == "" {
		return Commune{}, errors.New("name required")
	}
	if cm.DeliveryFee < 0 {
		return Commune{}, errors.New("deliveryFee must be non-negative")
	}
	cm.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(cm)
}

func (s *Service) SetActive(communeID int, active bool) error {
	if communeID <= 0 {
		return ErrNotFound
	}
	return s.repo.SetActive(communeID, active, time.Now().UTC().Format(time.RFC3339))
}
