package report

import (
	"context"
	"testing"

	"shopcore-be/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SalesReport(ctx context.Context, topN int) (*SalesReport, error) {
	args := m.Called(ctx, topN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SalesReport), args.Error(1)
}

func TestService_SalesReport(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Admin", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("SalesReport", ctx, 5).
			Return(&SalesReport{TotalOrders: 10}, nil).Once()

		rep, err := svc.SalesReport(ctx, auth.Principal{ID: 9, Role: auth.RoleAdmin}, 5)

		assert.NoError(t, err)
		assert.Equal(t, 10, rep.TotalOrders)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - Forbidden", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.SalesReport(ctx, auth.Principal{ID: 1, Role: auth.RoleUser}, 5)

		assert.ErrorIs(t, err, auth.ErrForbidden)
	})

	t.Run("Error - Unauthorized", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.SalesReport(ctx, auth.Principal{}, 5)

		assert.ErrorIs(t, err, auth.ErrUnauthorized)
	})
}
