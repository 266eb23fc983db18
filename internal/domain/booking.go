package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking snapshots the service fields at submission time; it is never
// live-joined against the services table afterwards.
type Booking struct {
	ID              int64         `json:"id"`
	UserName        string        `json:"user_name"`
	Email           string        `json:"email" validate:"required,email"`
	ServiceID       string        `json:"service_id" validate:"required"`
	ServiceTitle    string        `json:"service_title"`
	ServiceCategory string        `json:"service_category"`
	ServicePrice    float64       `json:"service_price"`
	BookingDate     string        `json:"booking_date" validate:"required"`
	ServiceLocation string        `json:"service_location" validate:"required"`
	ServiceMode     string        `json:"service_mode"`
	Note            string        `json:"note,omitempty" gorm:"type:text"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
