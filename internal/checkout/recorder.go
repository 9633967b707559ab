package checkout

import (
	"fmt"

	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/order"
	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/transaction"
)

// LedgerRecorder is the transaction-ledger collaborator.
type LedgerRecorder interface {
	CreatePending(tx transaction.Transaction) (transaction.Transaction, error)
}

// BuildTransaction prepares the pending ledger record written right after a
// successful initiation, before polling starts. The record exists so an
// audit trail survives even if confirmation never completes client-side.
func BuildTransaction(ord order.Order, form Form, fees FeeBreakdown, billID string) transaction.Transaction {
	return transaction.Transaction{
		OrderID:           ord.OrderID,
		Amount:            fees.TotalDueNow,
		Operator:          form.Selection.Operator,
		PaymentType:       fees.PaymentType(),
		Phone:             form.Selection.Phone,
		OperatorReference: billID,
		Note:              fmt.Sprintf("paiement %s pour la commande %s", fees.PaymentType(), ord.OrderNumber),
	}
}
