package payment

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrDuplicatePayment = errors.New("payment already exists for this order")
	ErrInvalidStatus    = errors.New("invalid payment status")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
