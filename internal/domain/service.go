package domain

import "time"

type Service struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Featured    bool      `gorm:"index" json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Service) TableName() string { return "services" }
