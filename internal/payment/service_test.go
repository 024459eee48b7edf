package payment

import (
	"context"
	"testing"

	"shopcore-be/internal/auth"
	"shopcore-be/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreatePaymentTx(ctx context.Context, p *Payment, orderStatus order.PaymentStatus) error {
	args := m.Called(ctx, p, orderStatus)
	return args.Error(0)
}

func (m *MockRepository) GetByOrder(ctx context.Context, orderID string) (*Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, paymentID string) (*Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockRepository) GetByUser(ctx context.Context, userID uint) ([]*Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Payment), args.Error(1)
}

func (m *MockRepository) UpdateStatusTx(ctx context.Context, paymentID string, status Status, orderStatus order.PaymentStatus) (*Payment, error) {
	args := m.Called(ctx, paymentID, status, orderStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

// MockOrderRepository is a mock for the order repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) PlaceOrderTx(ctx context.Context, userID uint, addr order.ShippingAddress, method order.PaymentMethod, payStatus order.PaymentStatus) (*order.Order, error) {
	args := m.Called(ctx, userID, addr, method, payStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOrdersByUser(ctx context.Context, userID uint) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, orderID string) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAll(ctx context.Context, limit, page int) ([]*order.Order, error) {
	args := m.Called(ctx, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, params order.UpdateStatusParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func TestService_CreatePayment(t *testing.T) {
	ctx := context.Background()
	userID := uint(1)
	orderID := "ord-1"

	ownedOrder := &order.Order{ID: orderID, UserID: userID, TotalAmount: 500}

	t.Run("Success - Card Settles Immediately", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockOrderRepo := new(MockOrderRepository)
		svc := NewService(mockRepo, mockOrderRepo)

		txn := "txn-123"

		mockOrderRepo.On("GetOrderByID", ctx, orderID).Return(ownedOrder, nil).Once()
		mockRepo.On("GetByOrder", ctx, orderID).Return(nil, nil).Once()
		mockRepo.On("CreatePaymentTx", ctx, mock.MatchedBy(func(p *Payment) bool {
			return p.Status == StatusSuccess &&
				p.Amount == 500 &&
				p.Currency == DefaultCurrency &&
				p.PaymentGateway == GatewayNone
		}), order.PaymentPaid).Return(nil).Once()

		p, instructions, err := svc.CreatePayment(ctx, CreatePaymentParams{
			UserID:        userID,
			OrderID:       orderID,
			PaymentMethod: order.MethodCard,
			TransactionID: &txn,
		})

		assert.NoError(t, err)
		assert.Equal(t, StatusSuccess, p.Status)
		assert.NotEmpty(t, instructions)
		mockRepo.AssertExpectations(t)
		mockOrderRepo.AssertExpectations(t)
	})

	t.Run("Success - COD Stays Pending", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockOrderRepo := new(MockOrderRepository)
		svc := NewService(mockRepo, mockOrderRepo)

		mockOrderRepo.On("GetOrderByID", ctx, orderID).Return(ownedOrder, nil).Once()
		mockRepo.On("GetByOrder", ctx, orderID).Return(nil, nil).Once()
		mockRepo.On("CreatePaymentTx", ctx, mock.MatchedBy(func(p *Payment) bool {
			return p.Status == StatusPending
		}), order.PaymentPending).Return(nil).Once()

		p, _, err := svc.CreatePayment(ctx, CreatePaymentParams{
			UserID:        userID,
			OrderID:       orderID,
			PaymentMethod: order.MethodCOD,
		})

		assert.NoError(t, err)
		assert.Equal(t, StatusPending, p.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Invalid Method", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockOrderRepository))

		_, _, err := svc.CreatePayment(ctx, CreatePaymentParams{
			UserID:        userID,
			OrderID:       orderID,
			PaymentMethod: order.PaymentMethod("CHEQUE"),
		})

		assert.ErrorIs(t, err, order.ErrInvalidPayMethod)
	})

	t.Run("Error - Order Not Owned", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockOrderRepo := new(MockOrderRepository)
		svc := NewService(mockRepo, mockOrderRepo)

		mockOrderRepo.On("GetOrderByID", ctx, orderID).
			Return(&order.Order{ID: orderID, UserID: 2}, nil).Once()

		_, _, err := svc.CreatePayment(ctx, CreatePaymentParams{
			UserID:        userID,
			OrderID:       orderID,
			PaymentMethod: order.MethodCOD,
		})

		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("Error - Duplicate Payment", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockOrderRepo := new(MockOrderRepository)
		svc := NewService(mockRepo, mockOrderRepo)

		mockOrderRepo.On("GetOrderByID", ctx, orderID).Return(ownedOrder, nil).Once()
		mockRepo.On("GetByOrder", ctx, orderID).Return(&Payment{ID: "pay-1"}, nil).Once()

		_, _, err := svc.CreatePayment(ctx, CreatePaymentParams{
			UserID:        userID,
			OrderID:       orderID,
			PaymentMethod: order.MethodCOD,
		})

		assert.ErrorIs(t, err, ErrDuplicatePayment)
	})

	t.Run("Error - Duplicate Lost Race Surfaces From Repo", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockOrderRepo := new(MockOrderRepository)
		svc := NewService(mockRepo, mockOrderRepo)

		mockOrderRepo.On("GetOrderByID", ctx, orderID).Return(ownedOrder, nil).Once()
		mockRepo.On("GetByOrder", ctx, orderID).Return(nil, nil).Once()
		mockRepo.On("CreatePaymentTx", ctx, mock.Anything, order.PaymentPending).
			Return(ErrDuplicatePayment).Once()

		_, _, err := svc.CreatePayment(ctx, CreatePaymentParams{
			UserID:        userID,
			OrderID:       orderID,
			PaymentMethod: order.MethodCOD,
		})

		assert.ErrorIs(t, err, ErrDuplicatePayment)
	})
}

func TestService_GetMyPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := &service{repo: mockRepo}

		mockRepo.On("GetByID", ctx, "pay-1").
			Return(&Payment{ID: "pay-1", UserID: 1}, nil).Once()

		p, err := svc.GetMyPayment(ctx, 1, "pay-1")

		assert.NoError(t, err)
		assert.Equal(t, "pay-1", p.ID)
	})

	t.Run("Error - Not Owner Reads As Not Found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := &service{repo: mockRepo}

		mockRepo.On("GetByID", ctx, "pay-1").
			Return(&Payment{ID: "pay-1", UserID: 2}, nil).Once()

		_, err := svc.GetMyPayment(ctx, 1, "pay-1")

		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})

	t.Run("Error - Missing", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := &service{repo: mockRepo}

		mockRepo.On("GetByID", ctx, "pay-1").Return(nil, nil).Once()

		_, err := svc.GetMyPayment(ctx, 1, "pay-1")

		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})
}

func TestService_UpdatePaymentStatus(t *testing.T) {
	ctx := context.Background()
	admin := auth.Principal{ID: 9, Role: auth.RoleAdmin}

	t.Run("Success - Order Status Re-derived", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := &service{repo: mockRepo}

		mockRepo.On("UpdateStatusTx", ctx, "pay-1", StatusFailed, order.PaymentFailed).
			Return(&Payment{ID: "pay-1", Status: StatusFailed}, nil).Once()

		p, err := svc.UpdatePaymentStatus(ctx, admin, "pay-1", StatusFailed)

		assert.NoError(t, err)
		assert.Equal(t, StatusFailed, p.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Invalid Status", func(t *testing.T) {
		svc := &service{}

		_, err := svc.UpdatePaymentStatus(ctx, admin, "pay-1", Status("settled"))

		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("Error - Forbidden", func(t *testing.T) {
		svc := &service{}

		_, err := svc.UpdatePaymentStatus(ctx, auth.Principal{ID: 1, Role: auth.RoleUser}, "pay-1", StatusSuccess)

		assert.ErrorIs(t, err, auth.ErrForbidden)
	})

	t.Run("Error - Payment Not Found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := &service{repo: mockRepo}

		mockRepo.On("UpdateStatusTx", ctx, "missing", StatusSuccess, order.PaymentPaid).
			Return(nil, ErrPaymentNotFound).Once()

		_, err := svc.UpdatePaymentStatus(ctx, admin, "missing", StatusSuccess)

		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})
}

func TestDeriveOrderStatus(t *testing.T) {
	assert.Equal(t, order.PaymentPaid, DeriveOrderStatus(StatusSuccess))
	assert.Equal(t, order.PaymentFailed, DeriveOrderStatus(StatusFailed))
	assert.Equal(t, order.PaymentPending, DeriveOrderStatus(StatusPending))
	assert.Equal(t, order.PaymentPending, DeriveOrderStatus(StatusRefunded))
}
