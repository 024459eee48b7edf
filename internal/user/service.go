package user

import (
	"context"
	"fmt"
	"strings"

	"shopcore-be/internal/auth"
	"shopcore-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, email, password string) (string, User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	GetUserByID(ctx context.Context, id uint) (User, error)
	// CreateAdmin creates a shop-scoped admin account. Superadmin only.
	CreateAdmin(ctx context.Context, p auth.Principal, email, password, shopID string) (User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	hashed, err := auth.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, email, hashed, auth.RoleUser, nil)
	if err != nil {
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		if strings.Contains(err.Error(), "users_email_key") {
			return "", User{}, ErrEmailExists
		}
		return "", User{}, err
	}

	token, err := auth.GenerateJWT(u.ID, string(u.Role), email, nil)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", fmt.Sprint(u.ID)), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register service completed",
		zap.String("user_id", fmt.Sprint(u.ID)),
		zap.String("email", email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(password, u.Password) {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(u.ID, string(u.Role), email, u.ShopID)
	return token, u, err
}

func (s *service) GetUserByID(ctx context.Context, id uint) (User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) CreateAdmin(ctx context.Context, p auth.Principal, email, password, shopID string) (User, error) {
	if err := auth.Require(p, auth.Requirement{Role: auth.RoleSuperAdmin}); err != nil {
		return User{}, err
	}

	if shopID == "" {
		return User{}, ErrShopRequired
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return User{}, err
	}

	u, err := s.repo.Create(ctx, email, hashed, auth.RoleAdmin, &shopID)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}

	logger.FromCtx(ctx).Info("admin account created",
		zap.String("admin_id", fmt.Sprint(u.ID)),
		zap.String("shop_id", shopID),
		zap.String("created_by", fmt.Sprint(p.ID)),
	)

	return u, nil
}
