package checkout

import (
	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/commune"
	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/payment"
)

// CartLine is an immutable snapshot of one cart entry, taken when the buyer
// submits the order.
type CartLine struct {
	ProductID   int               `json:"productId"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	UnitPrice   int               `json:"unitPrice"`
	Quantity    int               `json:"quantity"`
	Variant     map[string]string `json:"variant,omitempty"`
}

// Subtotal sums unit price times quantity over all lines.
func Subtotal(lines []CartLine) int {
	total := 0
	for _, l := range lines {
		total += l.UnitPrice * l.Quantity
	}
	return total
}

// DeliveryAddress is the buyer's contact and drop-off information. All
// fields except Instructions must be non-empty before submission.
type DeliveryAddress struct {
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	Street       string `json:"street"`
	Instructions string `json:"instructions,omitempty"`
}

// Complete reports whether every required address field is filled in.
func (a DeliveryAddress) Complete() bool {
	return a.FullName != "" && a.Phone != "" && a.Street != ""
}

// PaymentSelection is the buyer's chosen operator and mobile-money number.
type PaymentSelection struct {
	Operator payment.Operator `json:"operator"`
	Phone    string           `json:"phone"`
}

// FeeBreakdown is the derived money view of a checkout, recomputed whenever
// the cart, zone or payment mode changes.
type FeeBreakdown struct {
	DeliveryFee    int  `json:"deliveryFee"`
	TransactionFee int  `json:"transactionFee"`
	TotalDueNow    int  `json:"totalDueNow"`
	Remaining      int  `json:"remaining"`
	PayOnDelivery  bool `json:"payOnDelivery"`
}

// PaymentType returns the payment classification for the effective mode.
func (f FeeBreakdown) PaymentType() payment.Type {
	if f.PayOnDelivery {
		return payment.TypeDeliveryOnly
	}
	return payment.TypeFull
}

// Form carries everything a submission needs. The zone pointer is nil until
// the buyer picks a commune.
type Form struct {
	BoutiqueID    int               `json:"boutiqueId"`
	BoutiqueSlug  string            `json:"boutiqueSlug"`
	Email         string            `json:"email"`
	Lines         []CartLine        `json:"items"`
	Address       DeliveryAddress   `json:"address"`
	Zone          *commune.Commune  `json:"-"`
	Selection     *PaymentSelection `json:"payment,omitempty"`
	PayOnDelivery bool              `json:"payOnDelivery"`
}
