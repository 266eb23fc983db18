package catalog

import (
	"context"

	"shdeco/internal/domain"
)

const featuredLimit = 6

type ServiceRepository interface {
	GetAll(ctx context.Context) ([]domain.Service, error)
	GetFeatured(ctx context.Context, limit int) ([]domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

type Service struct {
	services ServiceRepository
}

func NewService(services ServiceRepository) *Service {
	return &Service{services: services}
}

func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.services.GetAll(ctx)
}

func (s *Service) ListFeatured(ctx context.Context) ([]domain.Service, error) {
	return s.services.GetFeatured(ctx, featuredLimit)
}

func (s *Service) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	return s.services.GetByID(ctx, id)
}
