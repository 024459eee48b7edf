package product

import "time"

type Product struct {
	ID          string  `json:"id"`
	ShopID      string  `json:"shop_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateProductParams struct {
	ShopID      string
	Name        string
	Description *string
	Price       float64
	Stock       int
}

type UpdateProductParams struct {
	ID          string
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	IsActive    *bool
}

type GetProductOptions struct {
	ProductID  string
	OnlyActive bool
}
