package payment

import (
	"context"

	"shdeco/internal/domain"
	"shdeco/internal/provider/stripe"
)

type bookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type bookingPaymentWriter interface {
	UpdatePaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) (int64, error)
}

type paymentStore interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByBookingID(ctx context.Context, bookingID int64) ([]domain.Payment, error)
	GetByEmail(ctx context.Context, email string) ([]domain.Payment, error)
}

type eventClaimer interface {
	ClaimOnce(ctx context.Context, eventID string) (alreadyProcessed bool, err error)
}

type anomalyStore interface {
	Create(ctx context.Context, a *domain.ReconciliationAnomaly) error
	GetAll(ctx context.Context) ([]domain.ReconciliationAnomaly, error)
}

type checkoutProvider interface {
	CreateCheckoutSession(ctx context.Context, p stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}
