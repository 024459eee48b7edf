package user

import (
	"context"
	"database/sql"

	"shopcore-be/internal/auth"
)

type Repository interface {
	Create(ctx context.Context, email, hashedPassword string, role auth.Role, shopID *string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id uint) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, email, hashedPassword string, role auth.Role, shopID *string) (User, error) {
	query := `
	INSERT INTO users (email, password, role, shop_id)
	VALUES ($1, $2, $3, $4)
	RETURNING id, email, password, role, shop_id, created_at
	`

	var u User
	err := r.db.QueryRowContext(ctx, query, email, hashedPassword, role, shopID).Scan(
		&u.ID,
		&u.Email,
		&u.Password,
		&u.Role,
		&u.ShopID,
		&u.CreatedAt,
	)
	if err != nil {
		return User{}, err
	}

	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	query := `
	SELECT id, email, password, role, shop_id, created_at
	FROM users
	WHERE email = $1
	`

	var u User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID,
		&u.Email,
		&u.Password,
		&u.Role,
		&u.ShopID,
		&u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}

	return u, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (User, error) {
	query := `
	SELECT id, email, password, role, shop_id, created_at
	FROM users
	WHERE id = $1
	`

	var u User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID,
		&u.Email,
		&u.Password,
		&u.Role,
		&u.ShopID,
		&u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}

	return u, nil
}
