package booking

import (
	"context"

	"shdeco/internal/domain"
)

// BookingRepository defines the storage operations the module needs.
// Payment-status writes are deliberately absent: that column belongs to
// the payment reconciliation engine.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	GetAll(ctx context.Context) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) (int64, error)
}
