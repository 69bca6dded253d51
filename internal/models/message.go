package models

import (
	"time"
)

// Message senders.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Message represents a chat message
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ChatID    uint      `gorm:"not null;index" json:"-"`
	Sender    string    `gorm:"size:50;not null" json:"sender"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}

// HistoryEntry is a message as the language model sees it.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToHistoryEntry maps the sender onto a model role. Anything that is not
// the user is treated as the assistant.
func (m Message) ToHistoryEntry() HistoryEntry {
	role := SenderAssistant
	if m.Sender == SenderUser {
		role = SenderUser
	}
	return HistoryEntry{Role: role, Content: m.Content}
}
