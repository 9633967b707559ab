package payment

// Operator identifies a mobile-money operator.
type Operator string

const (
	OperatorAirtel Operator = "airtel_money"
	OperatorMoov   Operator = "moov_money"
)

// operatorPrefixes maps each operator to the fixed two-digit prefix its
// 9-digit local numbers must start with.
var operatorPrefixes = map[Operator]string{
	OperatorAirtel: "07",
	OperatorMoov:   "06",
}

// IsValid reports whether op is one of the supported operators.
func (op Operator) IsValid() bool {
	_, ok := operatorPrefixes[op]
	return ok
}

// Status is a payment status string reported by the gateway.
type Status string

const (
	StatusPending   Status = "en_attente"
	StatusPaid      Status = "paye"
	StatusConfirmed Status = "confirme"
	StatusProcessed Status = "processed"
	StatusFailed    Status = "echec"
	StatusCancelled Status = "annule"
	StatusRefunded  Status = "rembourse"
)

// IsSuccess reports whether the status is a terminal success.
func (s Status) IsSuccess() bool {
	switch s {
	case StatusPaid, StatusConfirmed, StatusProcessed, "paid", "confirmed":
		return true
	default:
		return false
	}
}

// IsFailure reports whether the status is a terminal failure.
func (s Status) IsFailure() bool {
	switch s {
	case StatusFailed, StatusCancelled, "failed", "cancelled":
		return true
	default:
		return false
	}
}

// IsRefund reports whether the payment was refunded.
func (s Status) IsRefund() bool {
	return s == StatusRefunded || s == "refunded"
}

// IsTerminal reports whether the status will not change further.
func (s Status) IsTerminal() bool {
	return s.IsSuccess() || s.IsFailure() || s.IsRefund()
}

// Type classifies how much of the order a payment covers.
type Type string

const (
	// TypeFull covers subtotal plus all fees.
	TypeFull Type = "complet"
	// TypeDeliveryOnly covers delivery and transaction fees; the subtotal
	// stays due on delivery.
	TypeDeliveryOnly Type = "partiel"
)

// InitiateRequest is the payload sent to the gateway to start a payment.
type InitiateRequest struct {
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Amount      int      `json:"amount"`
	Reference   string   `json:"reference"`
	Operator    Operator `json:"operator"`
	Description string   `json:"description"`
	Name        string   `json:"name"`
}

// InitiateResponse is the gateway's answer to an initiation request.
type InitiateResponse struct {
	Success bool   `json:"success"`
	BillID  string `json:"bill_id"`
	Message string `json:"message"`
}

// StatusResponse is the gateway's answer to a status query.
type StatusResponse struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// WebhookPayload is the audit snapshot sent alongside an initiation for
// downstream notification consumers (receipt emails, seller webhooks). Its
// schema is an external contract; the checkout engine only fills it in.
type WebhookPayload struct {
	BoutiqueID   int           `json:"boutique_id"`
	OrderNumber  string        `json:"order_number"`
	CustomerName string        `json:"customer_name"`
	Phone        string        `json:"phone"`
	Commune      string        `json:"commune"`
	Address      string        `json:"address"`
	Amount       int           `json:"amount"`
	PaymentType  Type          `json:"payment_type"`
	Operator     Operator      `json:"operator"`
	Products     []WebhookItem `json:"products"`
}

// WebhookItem is one line of the audit snapshot.
type WebhookItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
}
