package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is written exactly once per reconciled provider event and is
// immutable afterwards; refunds or disputes would add new rows.
type Payment struct {
	ID              int64           `gorm:"primaryKey" json:"id"`
	BookingID       int64           `gorm:"index;not null" json:"booking_id"`
	Email           string          `gorm:"index" json:"email"`
	PaymentIntentID string          `gorm:"type:varchar(128)" json:"payment_intent_id"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,4)" json:"amount"`
	TrackingCode    string          `gorm:"type:varchar(16)" json:"tracking_code"`
	Status          PaymentStatus   `gorm:"type:varchar(20)" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
