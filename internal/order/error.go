package order

import "errors"

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrInvalidPayMethod  = errors.New("invalid payment method")
	ErrInvalidPayStatus  = errors.New("invalid payment status")
	ErrNothingToUpdate   = errors.New("no status fields provided")
)
