package cart

import (
	"context"

	"shopcore-be/internal/logger"
	"shopcore-be/internal/product"

	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	GetCart(ctx context.Context, userID uint) (*Cart, error)
	AddItem(ctx context.Context, userID uint, productID string, quantity int) (*Cart, error)
	UpdateItem(ctx context.Context, userID uint, productID string, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, userID uint, productID string) (*Cart, error)
	Clear(ctx context.Context, userID uint) error
}

// service implements the Service interface
type service struct {
	repo        Repository
	productRepo product.Repository
}

// NewService creates a new cart service
func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// GetCart never errors on an absent cart: the caller gets an empty-cart
// shape instead.
func (s *service) GetCart(ctx context.Context, userID uint) (*Cart, error) {
	c, err := s.repo.GetCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &Cart{UserID: userID, Items: []CartItem{}, TotalPrice: 0}, nil
	}
	return c, nil
}

// AddItem appends a new line capturing the current catalog price, or
// increments an existing line. Stock is validated against the cumulative
// quantity.
func (s *service) AddItem(ctx context.Context, userID uint, productID string, quantity int) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.Uint("user_id", userID),
		zap.String("product_id", productID),
	)

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	prod, err := s.productRepo.GetProductByID(ctx, product.GetProductOptions{
		ProductID:  productID,
		OnlyActive: true,
	})
	if err != nil {
		return nil, err
	}
	if prod == nil {
		return nil, ErrProductNotFound
	}

	existing, err := s.repo.GetItem(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	finalQty := quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	if finalQty > prod.Stock {
		log.Warn("insufficient stock",
			zap.Int("requested", finalQty),
			zap.Int("available", prod.Stock),
		)
		return nil, ErrInsufficientStock
	}

	c, err := s.repo.AddItem(ctx, AddItemParams{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Price:     prod.Price,
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// UpdateItem sets the quantity verbatim. Stock is not re-checked here,
// matching the add-time-only validation of the catalog.
func (s *service) UpdateItem(ctx context.Context, userID uint, productID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	err := s.repo.UpdateItemQuantity(ctx, UpdateItemParams{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID uint, productID string) (*Cart, error) {
	if err := s.repo.RemoveItem(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID uint) error {
	return s.repo.Clear(ctx, userID)
}
