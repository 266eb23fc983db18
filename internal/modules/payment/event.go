package payment

import (
	"encoding/json"
	"fmt"
)

const EventCheckoutCompleted = "checkout.session.completed"

// Event is a verified provider notification. Data.Object stays raw
// until the event type is known.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

type checkoutSessionObject struct {
	ID            string            `json:"id"`
	PaymentIntent string            `json:"payment_intent"`
	AmountTotal   int64             `json:"amount_total"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

// CheckoutCompletedEvent carries the fields the reconciliation engine
// consumes. BookingRef is the metadata value exactly as the checkout
// session carried it; resolving it to a booking is the engine's job.
type CheckoutCompletedEvent struct {
	EventID         string
	BookingRef      string
	CustomerEmail   string
	PaymentIntentID string
	AmountTotal     int64
}

func ParseCheckoutCompleted(ev *Event) (CheckoutCompletedEvent, error) {
	if ev.Type != EventCheckoutCompleted {
		return CheckoutCompletedEvent{}, fmt.Errorf("%w: unexpected event type %q", ErrPayloadMalformed, ev.Type)
	}

	var obj checkoutSessionObject
	if err := json.Unmarshal(ev.Data.Object, &obj); err != nil {
		return CheckoutCompletedEvent{}, fmt.Errorf("%w: %v", ErrPayloadMalformed, err)
	}

	email := obj.Metadata["userEmail"]
	if email == "" {
		email = obj.CustomerEmail
	}

	return CheckoutCompletedEvent{
		EventID:         ev.ID,
		BookingRef:      obj.Metadata["bookingId"],
		CustomerEmail:   email,
		PaymentIntentID: obj.PaymentIntent,
		AmountTotal:     obj.AmountTotal,
	}, nil
}
