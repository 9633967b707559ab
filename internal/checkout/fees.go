package checkout

import (
	"math"

	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/commune"
	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/config"
)

// ComputeFees derives the fee breakdown for a cart subtotal, an optional
// delivery zone and the requested payment mode. Inputs are normalized to
// safe defaults instead of failing: a missing zone means a zero delivery
// fee, and a zero delivery fee forces pay-in-full since no partial amount
// would exist to defer.
//
// The transaction fee is a fixed-rate charge on the amount collected now:
// deliveryFee alone when paying on delivery, subtotal+deliveryFee when
// paying in full. The deferred remainder bears no fee here; whatever is
// collected on delivery is settled outside this flow.
func ComputeFees(subtotal int, zone *commune.Commune, payOnDelivery bool) FeeBreakdown {
	if subtotal < 0 {
		subtotal = 0
	}

	deliveryFee := 0
	if zone != nil {
		deliveryFee = zone.DeliveryFee
	}
	if deliveryFee == 0 {
		payOnDelivery = false
	}

	base := subtotal + deliveryFee
	if payOnDelivery {
		base = deliveryFee
	}
	transactionFee := int(math.Round(float64(base) * config.TransactionFeeRate))

	out := FeeBreakdown{
		DeliveryFee:    deliveryFee,
		TransactionFee: transactionFee,
		PayOnDelivery:  payOnDelivery,
	}
	if payOnDelivery {
		out.TotalDueNow = deliveryFee + transactionFee
		out.Remaining = subtotal
	} else {
		out.TotalDueNow = subtotal + deliveryFee + transactionFee
	}
	return out
}
