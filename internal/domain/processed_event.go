package domain

import "time"

// ProcessedEvent marks a provider event id as claimed. Only its
// existence matters; the primary key is what makes duplicate webhook
// deliveries safe.
type ProcessedEvent struct {
	EventID     string    `gorm:"primaryKey;type:varchar(128)" json:"event_id"`
	ProcessedAt time.Time `json:"processed_at"`
}

func (ProcessedEvent) TableName() string { return "processed_events" }
