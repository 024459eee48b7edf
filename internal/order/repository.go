package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shopcore-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// PlaceOrderTx snapshots the user's cart into a new order and clears
	// the cart inside one transaction.
	PlaceOrderTx(ctx context.Context, userID uint, addr ShippingAddress, method PaymentMethod, payStatus PaymentStatus) (*Order, error)
	GetOrdersByUser(ctx context.Context, userID uint) ([]*Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
	ListAll(ctx context.Context, limit, page int) ([]*Order, error)
	UpdateStatus(ctx context.Context, params UpdateStatusParams) error
	Delete(ctx context.Context, orderID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) PlaceOrderTx(
	ctx context.Context,
	userID uint,
	addr ShippingAddress,
	method PaymentMethod,
	payStatus PaymentStatus,
) (*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "PlaceOrderTx"),
		zap.Uint("user_id", userID),
	)

	start := time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	// Lock the cart row so a concurrent mutation cannot slip between the
	// snapshot and the clear.
	var cartID string
	var total float64
	err = tx.QueryRowContext(ctx, `
		SELECT id, total_price FROM carts
		WHERE user_id = $1
		FOR UPDATE
	`, userID).Scan(&cartID, &total)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock cart: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT product_id, quantity, price
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at ASC
	`, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart items: %w", err)
	}

	type line struct {
		productID string
		quantity  int
		price     float64
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.productID, &l.quantity, &l.price); err != nil {
			rows.Close()
			return nil, err
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	o := &Order{
		UserID:          userID,
		ShippingAddress: addr,
		PaymentMethod:   method,
		PaymentStatus:   payStatus,
		OrderStatus:     StatusPlaced,
		TotalAmount:     total,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			user_id,
			ship_line1,
			ship_line2,
			ship_city,
			ship_state,
			ship_postal_code,
			ship_country,
			payment_method,
			payment_status,
			order_status,
			total_amount
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`,
		userID,
		addr.Line1, addr.Line2, addr.City, addr.State, addr.PostalCode, addr.Country,
		method, payStatus, StatusPlaced, total,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, l := range lines {
		item := OrderItem{
			OrderID:   o.ID,
			ProductID: l.productID,
			Quantity:  l.quantity,
			Price:     l.price,
		}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, o.ID, l.productID, l.quantity, l.price).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM cart_items WHERE cart_id = $1
	`, cartID); err != nil {
		return nil, fmt.Errorf("failed to clear cart items: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE carts SET total_price = 0, updated_at = NOW() WHERE id = $1
	`, cartID); err != nil {
		return nil, fmt.Errorf("failed to zero cart total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	log.Info("order placed",
		zap.String("order_id", o.ID),
		zap.Int("items", len(o.Items)),
		zap.Float64("total_amount", o.TotalAmount),
		zap.Duration("duration", time.Since(start)),
	)

	return o, nil
}

const orderColumns = `
	id,
	user_id,
	ship_line1,
	ship_line2,
	ship_city,
	ship_state,
	ship_postal_code,
	ship_country,
	payment_method,
	payment_status,
	order_status,
	total_amount,
	created_at,
	updated_at
`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.ShippingAddress.Line1,
		&o.ShippingAddress.Line2,
		&o.ShippingAddress.City,
		&o.ShippingAddress.State,
		&o.ShippingAddress.PostalCode,
		&o.ShippingAddress.Country,
		&o.PaymentMethod,
		&o.PaymentStatus,
		&o.OrderStatus,
		&o.TotalAmount,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) loadItems(ctx context.Context, o *Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at ASC
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

func (r *repository) GetOrdersByUser(ctx context.Context, userID uint) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (r *repository) GetOrderByID(ctx context.Context, orderID string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, orderID)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *repository) ListAll(ctx context.Context, limit, page int) ([]*Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

// UpdateStatus changes only the provided status fields. Order items are
// never touched after creation.
func (r *repository) UpdateStatus(ctx context.Context, params UpdateStatusParams) error {
	set := []string{}
	args := []any{}

	if params.OrderStatus != nil {
		set = append(set, fmt.Sprintf("order_status = $%d", len(args)+1))
		args = append(args, *params.OrderStatus)
	}
	if params.PaymentStatus != nil {
		set = append(set, fmt.Sprintf("payment_status = $%d", len(args)+1))
		args = append(args, *params.PaymentStatus)
	}

	if len(set) == 0 {
		return ErrNothingToUpdate
	}

	query := `
		UPDATE orders
		SET ` + set[0]
	for _, s := range set[1:] {
		query += ", " + s
	}
	query += `, updated_at = NOW()
		WHERE id = $` + fmt.Sprint(len(args)+1)
	args = append(args, params.OrderID)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, orderID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM orders WHERE id = $1
	`, orderID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
