package payment

import (
	"time"

	"shopcore-be/internal/order"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusRefunded Status = "refunded"
)

const (
	GatewayNone = "none"

	DefaultCurrency = "INR"
)

type Payment struct {
	ID             string              `json:"id"`
	UserID         uint                `json:"user_id"`
	OrderID        string              `json:"order_id"`
	PaymentMethod  order.PaymentMethod `json:"payment_method"`
	PaymentGateway string              `json:"payment_gateway"`
	TransactionID  *string             `json:"transaction_id,omitempty"`
	Amount         float64             `json:"amount"`
	Currency       string              `json:"currency"`
	Status         Status              `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type CreatePaymentParams struct {
	UserID         uint
	OrderID        string
	PaymentMethod  order.PaymentMethod
	PaymentGateway *string
	TransactionID  *string
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// DeriveOrderStatus maps a payment outcome onto the owning order's
// payment_status field.
func DeriveOrderStatus(s Status) order.PaymentStatus {
	switch s {
	case StatusSuccess:
		return order.PaymentPaid
	case StatusFailed:
		return order.PaymentFailed
	default:
		return order.PaymentPending
	}
}
