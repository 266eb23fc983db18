package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shdeco/internal/domain"
	"shdeco/internal/pkg/validator"
)

type Service struct {
	bookings BookingRepository
}

func NewService(bookings BookingRepository) *Service {
	return &Service{bookings: bookings}
}

func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	b := &domain.Booking{
		UserName:        req.UserName,
		Email:           req.Email,
		ServiceID:       req.ServiceID,
		ServiceTitle:    req.ServiceTitle,
		ServiceCategory: req.ServiceCategory,
		ServicePrice:    req.ServicePrice,
		BookingDate:     req.BookingDate,
		ServiceLocation: req.ServiceLocation,
		ServiceMode:     req.ServiceMode,
		Note:            req.Note,
		Status:          domain.BookingPending,
		PaymentStatus:   domain.PaymentUnpaid,
	}

	if fields := validator.Validate(b); fields != nil {
		return nil, &FieldErrors{Fields: fields}
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) GetBookingsByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	return s.bookings.GetByEmail(ctx, email)
}

func (s *Service) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.GetAll(ctx)
}

// UpdateStatus applies an administrative lifecycle transition. Only the
// operational status is reachable here; payment status moves
// exclusively through reconciliation.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	switch domain.BookingStatus(status) {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingCancelled, domain.BookingCompleted:
	default:
		return ErrValidation
	}

	matched, err := s.bookings.UpdateStatus(ctx, id, domain.BookingStatus(status))
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}
