// File: internal/domain/chat.go
package domain

import "time"

// Chat represents a single conversation thread with the assistant.
type Chat struct {
	ID     uint   `json:"id" gorm:"primarykey"`
	UserID uint   `json:"user_id" gorm:"not null;index"`
	Title  string `json:"title" gorm:"not null"` // generated from the first message
	// LastMessage mirrors the text of the latest user turn in this chat.
	LastMessage string    `json:"last_message"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
