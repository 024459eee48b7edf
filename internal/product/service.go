package product

import (
	"context"

	"shopcore-be/internal/auth"
	"shopcore-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for the catalog.
type Service interface {
	GetProduct(ctx context.Context, productID string) (*Product, error)
	ListProducts(ctx context.Context, shopID *string, limit, page int) ([]*Product, error)
	CreateProduct(ctx context.Context, p auth.Principal, params CreateProductParams) (*Product, error)
	UpdateProduct(ctx context.Context, p auth.Principal, params UpdateProductParams) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProduct(ctx context.Context, productID string) (*Product, error) {
	prod, err := s.repo.GetProductByID(ctx, GetProductOptions{
		ProductID:  productID,
		OnlyActive: true,
	})
	if err != nil {
		return nil, err
	}
	if prod == nil {
		return nil, ErrProductNotFound
	}
	return prod, nil
}

func (s *service) ListProducts(ctx context.Context, shopID *string, limit, page int) ([]*Product, error) {
	return s.repo.GetList(ctx, shopID, true, limit, page)
}

// CreateProduct is shop-scoped: an admin may only create products in
// their own shop, a superadmin anywhere.
func (s *service) CreateProduct(ctx context.Context, p auth.Principal, params CreateProductParams) (*Product, error) {
	// Admins without an explicit shop default to their own.
	if params.ShopID == "" && p.ShopID != nil {
		params.ShopID = *p.ShopID
	}

	if err := auth.Require(p, auth.Requirement{Role: auth.RoleAdmin, ShopID: params.ShopID}); err != nil {
		return nil, err
	}

	// A superadmin (or shopless admin) must still name a shop to create in.
	if params.ShopID == "" {
		return nil, ErrShopRequired
	}

	if params.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if params.Stock < 0 {
		return nil, ErrInvalidStock
	}

	prod, err := s.repo.Create(ctx, params)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create product",
			zap.String("shop_id", params.ShopID),
			zap.Error(err),
		)
		return nil, err
	}

	return prod, nil
}

func (s *service) UpdateProduct(ctx context.Context, p auth.Principal, params UpdateProductParams) (*Product, error) {
	existing, err := s.repo.GetProductByID(ctx, GetProductOptions{ProductID: params.ID})
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}

	if err := auth.Require(p, auth.Requirement{Role: auth.RoleAdmin, ShopID: existing.ShopID}); err != nil {
		return nil, err
	}

	if params.Price != nil && *params.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if params.Stock != nil && *params.Stock < 0 {
		return nil, ErrInvalidStock
	}

	updated, err := s.repo.Update(ctx, params)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrProductNotFound
	}

	return updated, nil
}
