package payment

import (
	"testing"

	"shopcore-be/internal/order"

	"github.com/stretchr/testify/assert"
)

func TestInstructions_COD(t *testing.T) {
	p := &Payment{
		PaymentMethod: order.MethodCOD,
		Amount:        499.50,
		Currency:      "INR",
	}

	lines := Instructions(p)

	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "INR 499.50")
}

func TestInstructions_CardWithTransaction(t *testing.T) {
	txn := "txn-789"
	p := &Payment{
		PaymentMethod: order.MethodCard,
		Amount:        1200,
		Currency:      "INR",
		TransactionID: &txn,
	}

	lines := Instructions(p)

	assert.Contains(t, lines[0], "INR 1200.00")
	assert.Contains(t, lines[1], "txn-789")
}

func TestInstructions_MissingTransactionFallsBack(t *testing.T) {
	p := &Payment{
		PaymentMethod: order.MethodUPI,
		Amount:        50,
		Currency:      "INR",
	}

	lines := Instructions(p)

	assert.Contains(t, lines[1], "-")
}

func TestInstructions_UnknownMethod(t *testing.T) {
	p := &Payment{PaymentMethod: order.PaymentMethod("BARTER")}
	assert.Nil(t, Instructions(p))
}
