package commune

import "errors"

var (
	ErrNotFound = errors.New("commune not found")
)

// Repository defines persistence operations for communes.
type Repository interface {
	ListActive(boutiqueID int) ([]Commune, error)
	GetByID(communeID int) (Commune, error)
	Create(cm Commune) (Commune, error)
	Update(cm Commune) (Commune, error)
	SetActive(communeID int, active bool, updatedAt string) error
}
