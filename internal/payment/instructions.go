package payment

import (
	"fmt"
	"strings"

	"shopcore-be/internal/order"
)

var instructionMap = map[order.PaymentMethod][]string{
	order.MethodCOD: {
		"Your order will be delivered to the shipping address",
		"Keep {{amount}} in cash ready when the courier arrives",
		"Pay the courier directly and collect the receipt",
	},

	order.MethodCard: {
		"Your card has been charged {{amount}}",
		"The charge appears on your statement under transaction {{transaction_id}}",
		"Keep the transaction reference for refunds",
	},

	order.MethodUPI: {
		"A UPI collect request for {{amount}} was completed",
		"Transaction reference: {{transaction_id}}",
		"Verify the debit in your UPI app",
	},
}

// Instructions renders the human-readable payment steps for a created
// payment, with the amount and transaction reference filled in.
func Instructions(p *Payment) []string {
	lines, ok := instructionMap[p.PaymentMethod]
	if !ok {
		return nil
	}

	amount := fmt.Sprintf("%s %.2f", p.Currency, p.Amount)
	txn := "-"
	if p.TransactionID != nil {
		txn = *p.TransactionID
	}

	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.ReplaceAll(l, "{{amount}}", amount)
		l = strings.ReplaceAll(l, "{{transaction_id}}", txn)
		out = append(out, l)
	}
	return out
}
