package transaction

import "github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/payment"

// Transaction is a ledger record tying a payment attempt to its order. It is
// written with status pending before confirmation polling starts, so an
// audit trail exists even if the poll never finishes; reconciliation of the
// final status happens ledger-side as operator confirmations arrive.
type Transaction struct {
	TransactionID     int              `json:"transactionId"`
	Reference         string           `json:"reference"`
	OrderID           int              `json:"orderId"`
	Amount            int              `json:"amount"`
	Operator          payment.Operator `json:"operator"`
	PaymentType       payment.Type     `json:"paymentType"`
	Phone             string           `json:"phone"`
	OperatorReference string           `json:"operatorReference"`
	Note              string           `json:"note,omitempty"`
	Status            string           `json:"status"`
	CreatedAt         string           `json:"createdAt"`
}

// StatusPending marks a transaction awaiting operator confirmation.
const StatusPending = "pending"
