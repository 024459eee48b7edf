package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopcore-be/internal/order"

	"github.com/lib/pq"
)

type Repository interface {
	// CreatePaymentTx inserts the payment and pushes the derived status
	// onto the owning order in one transaction.
	CreatePaymentTx(ctx context.Context, p *Payment, orderStatus order.PaymentStatus) error
	GetByOrder(ctx context.Context, orderID string) (*Payment, error)
	GetByID(ctx context.Context, paymentID string) (*Payment, error)
	GetByUser(ctx context.Context, userID uint) ([]*Payment, error)
	// UpdateStatusTx sets the payment status and re-derives the order's
	// payment_status in one transaction.
	UpdateStatusTx(ctx context.Context, paymentID string, status Status, orderStatus order.PaymentStatus) (*Payment, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const paymentColumns = `
	id,
	user_id,
	order_id,
	payment_method,
	payment_gateway,
	transaction_id,
	amount,
	currency,
	status,
	created_at,
	updated_at
`

func scanPayment(row interface{ Scan(...any) error }) (*Payment, error) {
	var p Payment
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.OrderID,
		&p.PaymentMethod,
		&p.PaymentGateway,
		&p.TransactionID,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) CreatePaymentTx(ctx context.Context, p *Payment, orderStatus order.PaymentStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO payments (
			user_id,
			order_id,
			payment_method,
			payment_gateway,
			transaction_id,
			amount,
			currency,
			status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`,
		p.UserID,
		p.OrderID,
		p.PaymentMethod,
		p.PaymentGateway,
		p.TransactionID,
		p.Amount,
		p.Currency,
		p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		// payments.order_id is unique: a concurrent create loses here.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			return ErrDuplicatePayment
		}
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET payment_status = $1, updated_at = NOW()
		WHERE id = $2
	`, orderStatus, p.OrderID)
	if err != nil {
		return fmt.Errorf("failed to update order payment status: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return tx.Commit()
}

func (r *repository) GetByOrder(ctx context.Context, orderID string) (*Payment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE order_id = $1
	`, orderID)

	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) GetByID(ctx context.Context, paymentID string) (*Payment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE id = $1
	`, paymentID)

	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) GetByUser(ctx context.Context, userID uint) ([]*Payment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *repository) UpdateStatusTx(ctx context.Context, paymentID string, status Status, orderStatus order.PaymentStatus) (*Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		UPDATE payments
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+paymentColumns+`
	`, status, paymentID)

	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET payment_status = $1, updated_at = NOW()
		WHERE id = $2
	`, orderStatus, p.OrderID); err != nil {
		return nil, fmt.Errorf("failed to update order payment status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return p, nil
}
