package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"shopcore-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetProductByID(ctx context.Context, opts GetProductOptions) (*Product, error)
	GetList(ctx context.Context, shopID *string, onlyActive bool, limit, page int) ([]*Product, error)
	Create(ctx context.Context, params CreateProductParams) (*Product, error)
	Update(ctx context.Context, params UpdateProductParams) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetProductByID(ctx context.Context, opts GetProductOptions) (*Product, error) {
	query := `
	SELECT
		id,
		shop_id,
		name,
		description,
		price,
		stock,
		is_active,
		created_at,
		updated_at
	FROM products
	WHERE id = $1
	`
	if opts.OnlyActive {
		query += ` AND is_active = TRUE`
	}

	var p Product
	row := r.db.QueryRowContext(ctx, query, opts.ProductID)
	err := row.Scan(
		&p.ID,
		&p.ShopID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Stock,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) GetList(ctx context.Context, shopID *string, onlyActive bool, limit, page int) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetList"),
	)

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

	where := []string{"1=1"}
	args := []any{}

	if shopID != nil && *shopID != "" {
		where = append(where, fmt.Sprintf("shop_id = $%d", len(args)+1))
		args = append(args, *shopID)
	}
	if onlyActive {
		where = append(where, "is_active = TRUE")
	}

	query := `
	SELECT
		id,
		shop_id,
		name,
		description,
		price,
		stock,
		is_active,
		created_at,
		updated_at
	FROM products
	WHERE ` + strings.Join(where, " AND ") + `
	ORDER BY created_at DESC
	LIMIT $` + fmt.Sprint(len(args)+1) + `
	OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := make([]*Product, 0, limit)
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID,
			&p.ShopID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.Stock,
			&p.IsActive,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		result = append(result, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *repository) Create(ctx context.Context, params CreateProductParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("shop_id", params.ShopID),
	)

	query := `
	INSERT INTO products (
		shop_id,
		name,
		description,
		price,
		stock,
		is_active
	)
	VALUES ($1, $2, $3, $4, $5, TRUE)
	RETURNING
		id,
		shop_id,
		name,
		description,
		price,
		stock,
		is_active,
		created_at,
		updated_at
	`

	var p Product
	row := r.db.QueryRowContext(
		ctx,
		query,
		params.ShopID,
		params.Name,
		params.Description,
		params.Price,
		params.Stock,
	)

	err := row.Scan(
		&p.ID,
		&p.ShopID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Stock,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.String("product_id", p.ID))

	return &p, nil
}

func (r *repository) Update(ctx context.Context, params UpdateProductParams) (*Product, error) {
	set := []string{}
	args := []any{}

	if params.Name != nil {
		set = append(set, fmt.Sprintf("name = $%d", len(args)+1))
		args = append(args, *params.Name)
	}
	if params.Description != nil {
		set = append(set, fmt.Sprintf("description = $%d", len(args)+1))
		args = append(args, *params.Description)
	}
	if params.Price != nil {
		set = append(set, fmt.Sprintf("price = $%d", len(args)+1))
		args = append(args, *params.Price)
	}
	if params.Stock != nil {
		set = append(set, fmt.Sprintf("stock = $%d", len(args)+1))
		args = append(args, *params.Stock)
	}
	if params.IsActive != nil {
		set = append(set, fmt.Sprintf("is_active = $%d", len(args)+1))
		args = append(args, *params.IsActive)
	}

	if len(set) == 0 {
		return r.GetProductByID(ctx, GetProductOptions{ProductID: params.ID})
	}

	set = append(set, "updated_at = NOW()")

	query := `
	UPDATE products
	SET ` + strings.Join(set, ", ") + `
	WHERE id = $` + fmt.Sprint(len(args)+1) + `
	RETURNING
		id,
		shop_id,
		name,
		description,
		price,
		stock,
		is_active,
		created_at,
		updated_at
	`
	args = append(args, params.ID)

	var p Product
	row := r.db.QueryRowContext(ctx, query, args...)
	err := row.Scan(
		&p.ID,
		&p.ShopID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Stock,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}
