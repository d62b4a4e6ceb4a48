package models

import "time"

// JournalEntry is a free-text reflection.
type JournalEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	Date      string    `gorm:"not null" json:"date"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName keeps the table name singular like the hosted schema.
func (JournalEntry) TableName() string {
	return "journal"
}
