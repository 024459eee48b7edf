package order

import (
	"context"

	"shopcore-be/internal/auth"
	"shopcore-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	PlaceOrder(ctx context.Context, userID uint, addr ShippingAddress, method PaymentMethod) (*Order, error)
	GetMyOrders(ctx context.Context, userID uint) ([]*Order, error)
	GetMyOrder(ctx context.Context, userID uint, orderID string) (*Order, error)
	CancelOrder(ctx context.Context, userID uint, orderID string) (*Order, error)

	ListAllOrders(ctx context.Context, p auth.Principal, limit, page int) ([]*Order, error)
	GetOrder(ctx context.Context, p auth.Principal, orderID string) (*Order, error)
	UpdateStatus(ctx context.Context, p auth.Principal, params UpdateStatusParams) (*Order, error)
	DeleteOrder(ctx context.Context, p auth.Principal, orderID string) error
}

type service struct {
	repo              Repository
	strictTransitions bool
}

type Option func(*service)

// WithStrictTransitions enables the opt-in transition table for admin
// status updates. The default mirrors the permissive behavior: any
// status may be set to any other.
func WithStrictTransitions() Option {
	return func(s *service) { s.strictTransitions = true }
}

func NewService(repo Repository, opts ...Option) Service {
	s := &service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// allowedTransitions is only consulted when strict mode is on.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPlaced:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

func transitionAllowed(from, to OrderStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// PlaceOrder freezes the current cart into an order. Non-COD methods are
// recorded as already paid at placement; COD stays pending until the
// payment record lands.
func (s *service) PlaceOrder(ctx context.Context, userID uint, addr ShippingAddress, method PaymentMethod) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Uint("user_id", userID),
	)

	if !ValidPaymentMethod(method) {
		return nil, ErrInvalidPayMethod
	}

	payStatus := PaymentPaid
	if method == MethodCOD {
		payStatus = PaymentPending
	}

	o, err := s.repo.PlaceOrderTx(ctx, userID, addr, method, payStatus)
	if err != nil {
		log.Error("failed to place order", zap.Error(err))
		return nil, err
	}

	return o, nil
}

func (s *service) GetMyOrders(ctx context.Context, userID uint) ([]*Order, error) {
	return s.repo.GetOrdersByUser(ctx, userID)
}

func (s *service) GetMyOrder(ctx context.Context, userID uint, orderID string) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// Not-owned reads as not-found, so existence is not leaked.
	if o == nil || o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) CancelOrder(ctx context.Context, userID uint, orderID string) (*Order, error) {
	o, err := s.GetMyOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if o.OrderStatus == StatusShipped || o.OrderStatus == StatusDelivered {
		return nil, ErrInvalidTransition
	}

	cancelled := StatusCancelled
	if err := s.repo.UpdateStatus(ctx, UpdateStatusParams{
		OrderID:     orderID,
		OrderStatus: &cancelled,
	}); err != nil {
		return nil, err
	}

	o.OrderStatus = StatusCancelled
	return o, nil
}

func (s *service) ListAllOrders(ctx context.Context, p auth.Principal, limit, page int) ([]*Order, error) {
	if err := auth.Require(p, auth.Requirement{Role: auth.RoleAdmin}); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx, limit, page)
}

func (s *service) GetOrder(ctx context.Context, p auth.Principal, orderID string) (*Order, error) {
	if err := auth.Require(p, auth.Requirement{Role: auth.RoleAdmin}); err != nil {
		return nil, err
	}

	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// UpdateStatus is a partial update: only the provided fields change.
func (s *service) UpdateStatus(ctx context.Context, p auth.Principal, params UpdateStatusParams) (*Order, error) {
	if err := auth.Require(p, auth.Requirement{Role: auth.RoleAdmin}); err != nil {
		return nil, err
	}

	if params.OrderStatus == nil && params.PaymentStatus == nil {
		return nil, ErrNothingToUpdate
	}
	if params.OrderStatus != nil && !ValidOrderStatus(*params.OrderStatus) {
		return nil, ErrInvalidStatus
	}
	if params.PaymentStatus != nil && !ValidPaymentStatus(*params.PaymentStatus) {
		return nil, ErrInvalidPayStatus
	}

	if s.strictTransitions && params.OrderStatus != nil {
		current, err := s.repo.GetOrderByID(ctx, params.OrderID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, ErrOrderNotFound
		}
		if !transitionAllowed(current.OrderStatus, *params.OrderStatus) {
			return nil, ErrInvalidTransition
		}
	}

	if err := s.repo.UpdateStatus(ctx, params); err != nil {
		return nil, err
	}

	o, err := s.repo.GetOrderByID(ctx, params.OrderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.String("order_id", params.OrderID),
		zap.String("order_status", string(o.OrderStatus)),
		zap.String("payment_status", string(o.PaymentStatus)),
		zap.String("updated_by", string(p.Role)),
	)

	return o, nil
}

// DeleteOrder is restricted to the highest-privilege role.
func (s *service) DeleteOrder(ctx context.Context, p auth.Principal, orderID string) error {
	if err := auth.Require(p, auth.Requirement{Role: auth.RoleSuperAdmin}); err != nil {
		return err
	}
	return s.repo.Delete(ctx, orderID)
}
