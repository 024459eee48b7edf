package cart

import "time"

// Cart is the per-user aggregate: one row in carts, lines in cart_items.
// TotalPrice is recomputed inside the same transaction as every mutation.
type Cart struct {
	ID         string     `json:"id"`
	UserID     uint       `json:"user_id"`
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"total_price"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CartItem freezes the catalog price at add time. The price is never
// refreshed from the catalog afterwards.
type CartItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type AddItemParams struct {
	UserID    uint
	ProductID string
	Quantity  int
	// Price is the catalog price captured by the service at add time.
	Price float64
}

type UpdateItemParams struct {
	UserID    uint
	ProductID string
	Quantity  int
}
