// File: internal/domain/message.go
package domain

import "time"

// Message roles. The generation provider only understands these two.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message represents a single turn within a chat. Messages are never
// mutated after creation; they are removed only by their chat's cascade.
type Message struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ChatID    uint      `json:"chat_id" gorm:"not null;index"`
	Role      string    `json:"role" gorm:"not null"` // "user" or "model"
	Message   string    `json:"message" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
