package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopcore-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetCartByUser(ctx context.Context, userID uint) (*Cart, error)
	GetItem(ctx context.Context, userID uint, productID string) (*CartItem, error)
	AddItem(ctx context.Context, params AddItemParams) (*Cart, error)
	UpdateItemQuantity(ctx context.Context, params UpdateItemParams) error
	RemoveItem(ctx context.Context, userID uint, productID string) error
	Clear(ctx context.Context, userID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// recomputeTotal keeps the invariant total_price == SUM(price * quantity)
// inside the mutating transaction.
func recomputeTotal(ctx context.Context, tx *sql.Tx, cartID string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE carts
		SET total_price = COALESCE((
			SELECT SUM(price * quantity)
			FROM cart_items
			WHERE cart_id = $1
		), 0),
		updated_at = NOW()
		WHERE id = $2
	`, cartID, cartID)
	return err
}

func (r *repository) GetCartByUser(ctx context.Context, userID uint) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCartByUser"),
		zap.Uint("user_id", userID),
	)

	c := &Cart{UserID: userID, Items: []CartItem{}}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, total_price, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`, userID)

	err := row.Scan(&c.ID, &c.UserID, &c.TotalPrice, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get cart", zap.Error(err))
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			ci.id,
			ci.product_id,
			COALESCE(p.name, 'UNKNOWN'),
			ci.quantity,
			ci.price
		FROM cart_items ci
		LEFT JOIN products p ON ci.product_id = p.id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at ASC
	`, c.ID)
	if err != nil {
		log.Error("failed to get cart items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item CartItem
		if err := rows.Scan(
			&item.ID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.Price,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		c.Items = append(c.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return c, nil
}

func (r *repository) GetItem(ctx context.Context, userID uint, productID string) (*CartItem, error) {
	query := `
	SELECT ci.id, ci.product_id, ci.quantity, ci.price
	FROM cart_items ci
	JOIN carts c ON ci.cart_id = c.id
	WHERE c.user_id = $1 AND ci.product_id = $2
	`

	var item CartItem
	row := r.db.QueryRowContext(ctx, query, userID, productID)
	err := row.Scan(&item.ID, &item.ProductID, &item.Quantity, &item.Price)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) AddItem(ctx context.Context, params AddItemParams) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AddItem"),
		zap.Uint("user_id", params.UserID),
		zap.String("product_id", params.ProductID),
	)

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var cartID string

		// Cart is created lazily on first add.
		err := tx.QueryRowContext(ctx, `
			SELECT id FROM carts WHERE user_id = $1 FOR UPDATE
		`, params.UserID).Scan(&cartID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				err = tx.QueryRowContext(ctx, `
					INSERT INTO carts (user_id, total_price)
					VALUES ($1, 0)
					RETURNING id
				`, params.UserID).Scan(&cartID)
				if err != nil {
					return fmt.Errorf("failed to create cart: %w", err)
				}
			} else {
				return fmt.Errorf("failed to lock cart: %w", err)
			}
		}

		var itemID string
		var existingQty int
		err = tx.QueryRowContext(ctx, `
			SELECT id, quantity FROM cart_items
			WHERE cart_id = $1 AND product_id = $2
		`, cartID, params.ProductID).Scan(&itemID, &existingQty)

		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("failed to query cart item: %w", err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO cart_items (cart_id, product_id, quantity, price)
				VALUES ($1, $2, $3, $4)
			`, cartID, params.ProductID, params.Quantity, params.Price)
			if err != nil {
				return fmt.Errorf("failed to insert cart item: %w", err)
			}
		} else {
			// Existing line keeps its frozen price; only quantity grows.
			_, err = tx.ExecContext(ctx, `
				UPDATE cart_items
				SET quantity = $1, updated_at = NOW()
				WHERE id = $2
			`, existingQty+params.Quantity, itemID)
			if err != nil {
				return fmt.Errorf("failed to update cart item: %w", err)
			}
		}

		if err := recomputeTotal(ctx, tx, cartID); err != nil {
			return fmt.Errorf("failed to recompute total: %w", err)
		}

		// Idempotent link into the user's recent carts list.
		_, err = tx.ExecContext(ctx, `
			INSERT INTO user_carts (user_id, cart_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id, cart_id) DO NOTHING
		`, params.UserID, cartID)
		if err != nil {
			return fmt.Errorf("failed to link cart: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error("failed to add cart item", zap.Error(err))
		return nil, err
	}

	log.Info("cart item added", zap.Int("quantity", params.Quantity))

	return r.GetCartByUser(ctx, params.UserID)
}

func (r *repository) UpdateItemQuantity(ctx context.Context, params UpdateItemParams) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		var cartID string
		err := tx.QueryRowContext(ctx, `
			SELECT id FROM carts WHERE user_id = $1 FOR UPDATE
		`, params.UserID).Scan(&cartID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCartItemNotFound
		}
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE cart_items
			SET quantity = $1, updated_at = NOW()
			WHERE cart_id = $2 AND product_id = $3
		`, params.Quantity, cartID, params.ProductID)
		if err != nil {
			return err
		}

		rowsAffected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return ErrCartItemNotFound
		}

		return recomputeTotal(ctx, tx, cartID)
	})
}

// RemoveItem is no-op tolerant: removing an absent line succeeds.
func (r *repository) RemoveItem(ctx context.Context, userID uint, productID string) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		var cartID string
		err := tx.QueryRowContext(ctx, `
			SELECT id FROM carts WHERE user_id = $1 FOR UPDATE
		`, userID).Scan(&cartID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			DELETE FROM cart_items
			WHERE cart_id = $1 AND product_id = $2
		`, cartID, productID)
		if err != nil {
			return err
		}

		return recomputeTotal(ctx, tx, cartID)
	})
}

func (r *repository) Clear(ctx context.Context, userID uint) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		var cartID string
		err := tx.QueryRowContext(ctx, `
			SELECT id FROM carts WHERE user_id = $1 FOR UPDATE
		`, userID).Scan(&cartID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			DELETE FROM cart_items WHERE cart_id = $1
		`, cartID); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE carts
			SET total_price = 0, updated_at = NOW()
			WHERE id = $1
		`, cartID)
		return err
	})
}
