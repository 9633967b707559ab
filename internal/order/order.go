package order

// Item is one line of an order: a snapshot of the product at purchase time.
type Item struct {
	ProductID   int               `json:"productId"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Quantity    int               `json:"quantity"`
	UnitPrice   int               `json:"unitPrice"`
	Variant     map[string]string `json:"variant,omitempty"`
}

// Order represents a purchase placed through a boutique. Orders are created
// once per checkout attempt and never mutated afterwards; an order whose
// payment fails simply stays in en_attente_paiement.
type Order struct {
	OrderID      int    `json:"orderId"`
	OrderNumber  string `json:"orderNumber"`
	BoutiqueID   int    `json:"boutiqueId"`
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Commune      string `json:"commune"`
	Instructions string `json:"instructions,omitempty"`
	Items        []Item `json:"items"`
	Subtotal     int    `json:"subtotal"`
	DeliveryFee  int    `json:"deliveryFee"`
	Taxes        int    `json:"taxes"`
	Discount     int    `json:"discount"`
	Total        int    `json:"total"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// StatusAwaitingPayment is the status assigned to every freshly created
// order until the ledger reconciles a confirmed payment.
const StatusAwaitingPayment = "en_attente_paiement"

// CreateRequest carries everything needed to create an order.
type CreateRequest struct {
	BoutiqueID   int    `json:"boutiqueId"`
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Commune      string `json:"commune"`
	Instructions string `json:"instructions"`
	Items        []Item `json:"items"`
	DeliveryFee  int    `json:"deliveryFee"`
	Taxes        int    `json:"taxes"`
	Discount     int    `json:"discount"`
}
