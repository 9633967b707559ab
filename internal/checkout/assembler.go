package checkout

import (
	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/order"
)

// OrderCreator is the order-creation collaborator.
type OrderCreator interface {
	Create(req order.CreateRequest) (order.Order, error)
}

// AssembleOrder turns the submitted form and computed fees into an
// order-creation request. The transaction fee travels as taxes; no discount
// applies at checkout.
func AssembleOrder(form Form, fees FeeBreakdown) order.CreateRequest {
	items := make([]order.Item, 0, len(form.Lines))
	for _, l := range form.Lines {
		items = append(items, order.Item{
			ProductID:   l.ProductID,
			Name:        l.Name,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Variant:     l.Variant,
		})
	}

	communeName := ""
	if form.Zone != nil {
		communeName = form.Zone.Name
	}

	return order.CreateRequest{
		BoutiqueID:   form.BoutiqueID,
		CustomerName: form.Address.FullName,
		Phone:        form.Address.Phone,
		Address:      form.Address.Street,
		Commune:      communeName,
		Instructions: form.Address.Instructions,
		Items:        items,
		DeliveryFee:  fees.DeliveryFee,
		Taxes:        fees.TransactionFee,
		Discount:     0,
	}
}
