package report

import (
	"context"

	"shopcore-be/internal/auth"
)

type Service interface {
	SalesReport(ctx context.Context, p auth.Principal, topN int) (*SalesReport, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SalesReport(ctx context.Context, p auth.Principal, topN int) (*SalesReport, error) {
	if err := auth.Require(p, auth.Requirement{Role: auth.RoleAdmin}); err != nil {
		return nil, err
	}
	return s.repo.SalesReport(ctx, topN)
}
