package payment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"shopcore-be/internal/order"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paymentCols = []string{
	"id", "user_id", "order_id",
	"payment_method", "payment_gateway", "transaction_id",
	"amount", "currency", "status",
	"created_at", "updated_at",
}

func TestRepository_CreatePaymentTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	p := &Payment{
		UserID:         1,
		OrderID:        "ord-1",
		PaymentMethod:  order.MethodCard,
		PaymentGateway: GatewayNone,
		Amount:         500,
		Currency:       DefaultCurrency,
		Status:         StatusSuccess,
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO payments").
			WithArgs(p.UserID, p.OrderID, p.PaymentMethod, p.PaymentGateway, p.TransactionID, p.Amount, p.Currency, p.Status).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow("pay-1", time.Now(), time.Now()))
		mock.ExpectExec("UPDATE orders\\s+SET payment_status").
			WithArgs(order.PaymentPaid, p.OrderID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreatePaymentTx(context.Background(), p, order.PaymentPaid)
		assert.NoError(t, err)
		assert.Equal(t, "pay-1", p.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error - Unique Violation Maps To Duplicate", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO payments").
			WillReturnError(&pq.Error{Code: pq.ErrorCode(PgUniqueViolation)})
		mock.ExpectRollback()

		err := repo.CreatePaymentTx(context.Background(), p, order.PaymentPaid)
		assert.ErrorIs(t, err, ErrDuplicatePayment)
	})

	t.Run("Error - Order Vanished", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO payments").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow("pay-1", time.Now(), time.Now()))
		mock.ExpectExec("UPDATE orders\\s+SET payment_status").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.CreatePaymentTx(context.Background(), p, order.PaymentPaid)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_GetByOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT(.|\\s)+FROM payments\\s+WHERE order_id = \\$1").
			WithArgs("ord-1").
			WillReturnRows(sqlmock.NewRows(paymentCols).
				AddRow("pay-1", 1, "ord-1", "COD", "none", nil, 500.0, "INR", "pending", time.Now(), time.Now()))

		p, err := repo.GetByOrder(context.Background(), "ord-1")
		assert.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "pay-1", p.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT(.|\\s)+FROM payments\\s+WHERE order_id = \\$1").
			WithArgs("ord-2").
			WillReturnError(sql.ErrNoRows)

		p, err := repo.GetByOrder(context.Background(), "ord-2")
		assert.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestRepository_UpdateStatusTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE payments\\s+SET status").
			WithArgs(StatusFailed, "pay-1").
			WillReturnRows(sqlmock.NewRows(paymentCols).
				AddRow("pay-1", 1, "ord-1", "CARD", "none", nil, 500.0, "INR", "failed", time.Now(), time.Now()))
		mock.ExpectExec("UPDATE orders\\s+SET payment_status").
			WithArgs(order.PaymentFailed, "ord-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		p, err := repo.UpdateStatusTx(context.Background(), "pay-1", StatusFailed, order.PaymentFailed)
		assert.NoError(t, err)
		assert.Equal(t, StatusFailed, p.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE payments\\s+SET status").
			WithArgs(StatusSuccess, "missing").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.UpdateStatusTx(context.Background(), "missing", StatusSuccess, order.PaymentPaid)
		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})
}
