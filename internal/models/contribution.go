package models

import "time"

// Contribution records external capital added to the portfolio.
type Contribution struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	Date      string    `gorm:"index;not null" json:"date"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
