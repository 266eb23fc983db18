package repository

import (
	"context"

	"shdeco/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	var payments []domain.Payment
	tx := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).Find(&payments)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return payments, nil
}

func (r *PaymentRepository) GetByEmail(ctx context.Context, email string) ([]domain.Payment, error) {
	var payments []domain.Payment
	tx := r.db.WithContext(ctx).Where("email = ?", email).Order("created_at DESC").Find(&payments)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return payments, nil
}
