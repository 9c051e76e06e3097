package models

import (
	"time"
)

// DirectMessage is the persisted form of an inbox message. OwnerID scopes
// rows to one user's inbox; PublicID carries the session-level message id.
type DirectMessage struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	PublicID      string    `gorm:"size:32;index" json:"id"`
	OwnerID       string    `gorm:"size:60;index" json:"-"`
	SenderID      string    `gorm:"size:60;index" json:"sender_id"`
	SenderName    string    `gorm:"size:255" json:"sender_name"`
	RecipientID   string    `gorm:"size:60;index" json:"recipient_id"`
	RecipientName string    `gorm:"size:255" json:"recipient_name"`
	Body          string    `gorm:"type:text;not null" json:"body"`
	Timestamp     time.Time `json:"timestamp"`
	Read          bool      `gorm:"default:false" json:"read"`
}

func (DirectMessage) TableName() string {
	return "direct_messages"
}
