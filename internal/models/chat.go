package models

import (
	"time"
)

// Chat represents a conversation owned by a user. ChatID is the
// client-generated identifier, ID the database key.
type Chat struct {
	ID        uint      `gorm:"primaryKey"`
	ChatID    string    `gorm:"size:64;uniqueIndex;not null"`
	Name      string    `gorm:"size:255;not null"`
	UserID    uint      `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"index"`
	Messages  []Message `gorm:"constraint:OnDelete:CASCADE"`
}

// ChatSummary is the entry returned by the latest-chats listing.
type ChatSummary struct {
	ChatID string `json:"chat_id"`
	Name   string `json:"name"`
}
