package repository

import (
	"context"

	"shdeco/internal/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) GetAll(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service
	tx := r.db.WithContext(ctx).Find(&services)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return services, nil
}

func (r *ServiceRepository) GetFeatured(ctx context.Context, limit int) ([]domain.Service, error) {
	var services []domain.Service
	tx := r.db.WithContext(ctx).Limit(limit).Find(&services)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return services, nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var s domain.Service
	tx := r.db.WithContext(ctx).First(&s, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}
