package repository

import (
	"context"
	"time"

	"shdeco/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	UserName        string    `gorm:"column:user_name"`
	Email           string    `gorm:"column:email;index;not null"`
	ServiceID       string    `gorm:"column:service_id"`
	ServiceTitle    string    `gorm:"column:service_title"`
	ServiceCategory string    `gorm:"column:service_category"`
	ServicePrice    float64   `gorm:"column:service_price"`
	BookingDate     string    `gorm:"column:booking_date"`
	ServiceLocation string    `gorm:"column:service_location"`
	ServiceMode     string    `gorm:"column:service_mode"`
	Note            *string   `gorm:"column:note"`
	Status          string    `gorm:"column:status"`
	PaymentStatus   string    `gorm:"column:payment_status"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var note string
	if m.Note != nil {
		note = *m.Note
	}

	return &domain.Booking{
		ID:              m.ID,
		UserName:        m.UserName,
		Email:           m.Email,
		ServiceID:       m.ServiceID,
		ServiceTitle:    m.ServiceTitle,
		ServiceCategory: m.ServiceCategory,
		ServicePrice:    m.ServicePrice,
		BookingDate:     m.BookingDate,
		ServiceLocation: m.ServiceLocation,
		ServiceMode:     m.ServiceMode,
		Note:            note,
		Status:          domain.BookingStatus(m.Status),
		PaymentStatus:   domain.PaymentStatus(m.PaymentStatus),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var note *string
	if b.Note != "" {
		v := b.Note
		note = &v
	}

	return bookingModel{
		ID:              b.ID,
		UserName:        b.UserName,
		Email:           b.Email,
		ServiceID:       b.ServiceID,
		ServiceTitle:    b.ServiceTitle,
		ServiceCategory: b.ServiceCategory,
		ServicePrice:    b.ServicePrice,
		BookingDate:     b.BookingDate,
		ServiceLocation: b.ServiceLocation,
		ServiceMode:     b.ServiceMode,
		Note:            note,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).Where("email = ?", email).Order("created_at DESC").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) GetAll(ctx context.Context) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// UpdateStatus advances the operational lifecycle only. The payment
// lifecycle goes through UpdatePaymentStatus; the two touch disjoint
// columns and may race safely.
func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", bookingID).
		Update("status", string(status))
	return tx.RowsAffected, tx.Error
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", bookingID).
		Update("payment_status", string(status))
	return tx.RowsAffected, tx.Error
}
