package user

import (
	"time"

	"shopcore-be/internal/auth"
)

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      auth.Role `json:"role"`
	ShopID    *string   `json:"shop_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Principal converts a stored user into the request-scoped principal value.
func (u User) Principal() auth.Principal {
	return auth.Principal{
		ID:     u.ID,
		Email:  u.Email,
		Role:   u.Role,
		ShopID: u.ShopID,
	}
}
