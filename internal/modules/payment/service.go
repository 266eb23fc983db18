package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	mrand "math/rand"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"shdeco/internal/domain"
	"shdeco/internal/provider/stripe"
)

const (
	trackingPrefix   = "TRK-"
	trackingAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	trackingLength   = 8

	defaultRetryAttempts = 3
	defaultRetryBackoff  = 200 * time.Millisecond
)

var minorUnitsPerUnit = decimal.NewFromInt(100)

type Service struct {
	payments      paymentStore
	bookings      bookingReader
	bookingWriter bookingPaymentWriter
	claims        eventClaimer
	anomalies     anomalyStore
	provider      checkoutProvider
	log           *logrus.Logger

	clientBaseURL string
	currency      string

	retryAttempts int
	retryBackoff  time.Duration
}

func NewService(
	payments paymentStore,
	bookings bookingReader,
	bookingWriter bookingPaymentWriter,
	claims eventClaimer,
	anomalies anomalyStore,
	provider checkoutProvider,
	clientBaseURL string,
	log *logrus.Logger,
) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{
		payments:      payments,
		bookings:      bookings,
		bookingWriter: bookingWriter,
		claims:        claims,
		anomalies:     anomalies,
		provider:      provider,
		log:           log,
		clientBaseURL: clientBaseURL,
		currency:      "usd",
		retryAttempts: defaultRetryAttempts,
		retryBackoff:  defaultRetryBackoff,
	}
}

// StartCheckout creates a hosted checkout session for a booking and
// returns its redirect URL. The booking id and customer email ride
// along as session metadata; the webhook later matches on exactly
// those values, so they are passed through unmodified.
func (s *Service) StartCheckout(ctx context.Context, req CreateCheckoutSessionRequest) (string, error) {
	if req.BookingID <= 0 || req.ServiceTitle == "" || req.UserEmail == "" {
		return "", ErrValidation
	}
	if req.Cost <= 0 || math.IsInf(req.Cost, 0) || math.IsNaN(req.Cost) {
		return "", ErrValidation
	}
	if _, err := s.bookings.GetByID(ctx, req.BookingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrValidation
		}
		return "", fmt.Errorf("booking check failed: %w", err)
	}

	unitAmount := decimal.NewFromFloat(req.Cost).Mul(minorUnitsPerUnit).Round(0).IntPart()
	bookingRef := strconv.FormatInt(req.BookingID, 10)

	session, err := s.provider.CreateCheckoutSession(ctx, stripe.CheckoutSessionParams{
		Currency:      s.currency,
		UnitAmount:    unitAmount,
		ProductName:   req.ServiceTitle,
		CustomerEmail: req.UserEmail,
		SuccessURL:    s.clientBaseURL + "/dashboard/payments?success=true&bookingId=" + bookingRef,
		CancelURL:     s.clientBaseURL + "/dashboard/payments?canceled=true",
		Metadata: map[string]string{
			"bookingId": bookingRef,
			"userEmail": req.UserEmail,
		},
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"booking_id": req.BookingID,
			"email":      req.UserEmail,
		}).WithError(err).Error("checkout session creation failed")
		return "", ErrProviderUnavailable
	}

	return session.URL, nil
}

// Reconcile records the payment for a verified checkout-completed
// event and advances the booking to paid. The idempotency claim is
// taken first; after it succeeds, no failure may surface as a
// retryable error, because the provider's retry would be deduplicated
// and the payment silently lost. Everything that goes wrong past the
// claim becomes a durable anomaly instead.
func (s *Service) Reconcile(ctx context.Context, ev CheckoutCompletedEvent) error {
	already, err := s.claims.ClaimOnce(ctx, ev.EventID)
	if err != nil {
		return fmt.Errorf("claim event %s: %w", ev.EventID, err)
	}
	if already {
		s.log.WithField("event_id", ev.EventID).Info("duplicate webhook delivery, already processed")
		return nil
	}

	amount := decimal.NewFromInt(ev.AmountTotal).Div(minorUnitsPerUnit)

	bookingID, err := strconv.ParseInt(ev.BookingRef, 10, 64)
	if err != nil {
		s.recordAnomaly(ctx, ev, 0, amount, "unresolvable booking reference "+strconv.Quote(ev.BookingRef))
		return nil
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		reason := "booking not found"
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			reason = "booking lookup failed: " + err.Error()
		}
		s.recordAnomaly(ctx, ev, bookingID, amount, reason)
		return nil
	}

	if amount.Sub(decimal.NewFromFloat(b.ServicePrice)).Abs().GreaterThan(decimal.New(1, -2)) {
		s.recordAnomaly(ctx, ev, bookingID, amount,
			fmt.Sprintf("amount %s does not match booked price %.2f", amount, b.ServicePrice))
	}

	p := &domain.Payment{
		BookingID:       bookingID,
		Email:           ev.CustomerEmail,
		PaymentIntentID: ev.PaymentIntentID,
		Amount:          amount,
		TrackingCode:    newTrackingCode(),
		Status:          domain.PaymentPaid,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.payments.Create(ctx, p); err != nil {
		s.recordAnomaly(ctx, ev, bookingID, amount, "payment insert failed: "+err.Error())
		return nil
	}

	if err := s.markBookingPaid(ctx, bookingID); err != nil {
		// Payment recorded, booking stale: auditable and repairable,
		// unlike a lost payment.
		s.recordAnomaly(ctx, ev, bookingID, amount, "booking payment status update failed: "+err.Error())
		return nil
	}

	s.log.WithFields(logrus.Fields{
		"event_id":      ev.EventID,
		"booking_id":    bookingID,
		"tracking_code": p.TrackingCode,
		"amount":        amount.String(),
	}).Info("payment reconciled")
	return nil
}

// PaymentsByEmail lists a customer's recorded payments, newest first.
func (s *Service) PaymentsByEmail(ctx context.Context, email string) ([]domain.Payment, error) {
	return s.payments.GetByEmail(ctx, email)
}

func (s *Service) PaymentsByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	return s.payments.GetByBookingID(ctx, bookingID)
}

// Anomalies exposes the reconciliation audit trail for manual repair.
func (s *Service) Anomalies(ctx context.Context) ([]domain.ReconciliationAnomaly, error) {
	return s.anomalies.GetAll(ctx)
}

func (s *Service) markBookingPaid(ctx context.Context, bookingID int64) error {
	var lastErr error
	backoff := s.retryBackoff
	for attempt := 0; attempt < s.retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff *= 2
		}

		matched, err := s.bookingWriter.UpdatePaymentStatus(ctx, bookingID, domain.PaymentPaid)
		if err == nil && matched > 0 {
			return nil
		}
		if err == nil {
			lastErr = fmt.Errorf("booking %d no longer exists", bookingID)
		} else {
			lastErr = err
		}
	}
	return lastErr
}

func (s *Service) recordAnomaly(ctx context.Context, ev CheckoutCompletedEvent, bookingID int64, amount decimal.Decimal, reason string) {
	fields := logrus.Fields{
		"event_id":          ev.EventID,
		"booking_id":        bookingID,
		"booking_ref":       ev.BookingRef,
		"payment_intent_id": ev.PaymentIntentID,
		"amount":            amount.String(),
		"reason":            reason,
	}
	s.log.WithFields(fields).Error("reconciliation anomaly")

	a := &domain.ReconciliationAnomaly{
		EventID:         ev.EventID,
		BookingID:       bookingID,
		PaymentIntentID: ev.PaymentIntentID,
		Amount:          amount,
		Reason:          reason,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.anomalies.Create(ctx, a); err != nil {
		// The log line above is the fallback audit trail.
		s.log.WithFields(fields).WithError(err).Error("failed to persist reconciliation anomaly")
	}
}

func newTrackingCode() string {
	buf := make([]byte, trackingLength)
	for i := range buf {
		buf[i] = trackingAlphabet[mrand.Intn(len(trackingAlphabet))]
	}
	return trackingPrefix + string(buf)
}
