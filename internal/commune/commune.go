package commune

// Commune represents a delivery zone served by a boutique: a flat delivery
// fee plus an estimated delivery window in days.
// JSON tags follow the camelCase convention used elsewhere in the project.
type Commune struct {
	CommuneID   int    `json:"communeId"`
	BoutiqueID  int    `json:"boutiqueId"`
	Name        string `json:"name"`
	DeliveryFee int    `json:"deliveryFee"`
	EtaMinDays  int    `json:"etaMinDays"`
	EtaMaxDays  int    `json:"etaMaxDays"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}
