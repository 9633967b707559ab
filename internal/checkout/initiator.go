package checkout

import (
	"fmt"

	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/order"
	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/payment"
)

// BuildPaymentRequest prepares the gateway initiation payload and the audit
// snapshot forwarded to downstream notification consumers. The order number
// is the reference on both, tying every later artifact (ledger row, webhook,
// confirmation link) back to one order.
func BuildPaymentRequest(ord order.Order, form Form, fees FeeBreakdown) (payment.InitiateRequest, payment.WebhookPayload) {
	req := payment.InitiateRequest{
		Email:       form.Email,
		Phone:       form.Selection.Phone,
		Amount:      fees.TotalDueNow,
		Reference:   ord.OrderNumber,
		Operator:    form.Selection.Operator,
		Description: fmt.Sprintf("Commande %s sur Marché 241", ord.OrderNumber),
		Name:        form.Address.FullName,
	}

	items := make([]payment.WebhookItem, 0, len(form.Lines))
	for _, l := range form.Lines {
		items = append(items, payment.WebhookItem{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	hook := payment.WebhookPayload{
		BoutiqueID:   form.BoutiqueID,
		OrderNumber:  ord.OrderNumber,
		CustomerName: form.Address.FullName,
		Phone:        form.Address.Phone,
		Commune:      ord.Commune,
		Address:      form.Address.Street,
		Amount:       fees.TotalDueNow,
		PaymentType:  fees.PaymentType(),
		Operator:     form.Selection.Operator,
		Products:     items,
	}
	return req, hook
}
