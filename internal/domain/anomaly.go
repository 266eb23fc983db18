package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationAnomaly is a durable note of a payment event that could
// not be fully reconciled (missing booking, stale booking status,
// amount drift). Kept for manual repair; never acted on automatically.
type ReconciliationAnomaly struct {
	ID              int64           `gorm:"primaryKey" json:"id"`
	EventID         string          `gorm:"index;type:varchar(128)" json:"event_id"`
	BookingID       int64           `json:"booking_id"`
	PaymentIntentID string          `gorm:"type:varchar(128)" json:"payment_intent_id"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,4)" json:"amount"`
	Reason          string          `gorm:"type:text" json:"reason"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (ReconciliationAnomaly) TableName() string { return "reconciliation_anomalies" }
