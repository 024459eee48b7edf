package payment

import (
	"context"

	"shopcore-be/internal/auth"
	"shopcore-be/internal/logger"
	"shopcore-be/internal/order"

	"go.uber.org/zap"
)

type Service interface {
	CreatePayment(ctx context.Context, params CreatePaymentParams) (*Payment, []string, error)
	GetMyPayments(ctx context.Context, userID uint) ([]*Payment, error)
	GetMyPayment(ctx context.Context, userID uint, paymentID string) (*Payment, error)
	UpdatePaymentStatus(ctx context.Context, p auth.Principal, paymentID string, status Status) (*Payment, error)
}

type service struct {
	repo      Repository
	orderRepo order.Repository
}

func NewService(repo Repository, orderRepo order.Repository) Service {
	return &service{repo: repo, orderRepo: orderRepo}
}

// CreatePayment records one payment attempt against an owned order.
// Non-COD methods settle immediately as success; COD stays pending. The
// order's payment_status is derived and persisted in the same
// transaction. The returned strings are the per-method instructions.
func (s *service) CreatePayment(ctx context.Context, params CreatePaymentParams) (*Payment, []string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreatePayment"),
		zap.Uint("user_id", params.UserID),
		zap.String("order_id", params.OrderID),
	)

	if !order.ValidPaymentMethod(params.PaymentMethod) {
		return nil, nil, order.ErrInvalidPayMethod
	}

	o, err := s.orderRepo.GetOrderByID(ctx, params.OrderID)
	if err != nil {
		return nil, nil, err
	}
	if o == nil || o.UserID != params.UserID {
		return nil, nil, ErrOrderNotFound
	}

	existing, err := s.repo.GetByOrder(ctx, params.OrderID)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, ErrDuplicatePayment
	}

	status := StatusSuccess
	if params.PaymentMethod == order.MethodCOD {
		status = StatusPending
	}

	gateway := GatewayNone
	if params.PaymentGateway != nil && *params.PaymentGateway != "" {
		gateway = *params.PaymentGateway
	}

	p := &Payment{
		UserID:         params.UserID,
		OrderID:        o.ID,
		PaymentMethod:  params.PaymentMethod,
		PaymentGateway: gateway,
		TransactionID:  params.TransactionID,
		Amount:         o.TotalAmount,
		Currency:       DefaultCurrency,
		Status:         status,
	}

	if err := s.repo.CreatePaymentTx(ctx, p, DeriveOrderStatus(status)); err != nil {
		log.Error("failed to create payment", zap.Error(err))
		return nil, nil, err
	}

	log.Info("payment created",
		zap.String("payment_id", p.ID),
		zap.String("status", string(p.Status)),
		zap.Float64("amount", p.Amount),
	)

	return p, Instructions(p), nil
}

func (s *service) GetMyPayments(ctx context.Context, userID uint) ([]*Payment, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *service) GetMyPayment(ctx context.Context, userID uint, paymentID string) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.UserID != userID {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

// UpdatePaymentStatus is admin-only and propagates the new status back
// onto the linked order.
func (s *service) UpdatePaymentStatus(ctx context.Context, p auth.Principal, paymentID string, status Status) (*Payment, error) {
	if err := auth.Require(p, auth.Requirement{Role: auth.RoleAdmin}); err != nil {
		return nil, err
	}

	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	updated, err := s.repo.UpdateStatusTx(ctx, paymentID, status, DeriveOrderStatus(status))
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("payment status updated",
		zap.String("payment_id", paymentID),
		zap.String("status", string(status)),
	)

	return updated, nil
}
