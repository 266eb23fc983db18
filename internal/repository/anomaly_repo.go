package repository

import (
	"context"

	"shdeco/internal/domain"

	"gorm.io/gorm"
)

type AnomalyRepository struct {
	db *gorm.DB
}

func NewAnomalyRepository(db *gorm.DB) *AnomalyRepository {
	return &AnomalyRepository{db: db}
}

func (r *AnomalyRepository) Create(ctx context.Context, a *domain.ReconciliationAnomaly) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AnomalyRepository) GetAll(ctx context.Context) ([]domain.ReconciliationAnomaly, error) {
	var anomalies []domain.ReconciliationAnomaly
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&anomalies)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return anomalies, nil
}
