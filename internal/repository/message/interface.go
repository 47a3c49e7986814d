// File: internal/repository/message/interface.go
package message

import (
	"context"

	"github.com/policylens/policylens/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	// FindByChatID returns every message of the chat in ascending creation
	// order. The order is deterministic: creation time, then id.
	FindByChatID(ctx context.Context, chatID uint) ([]domain.Message, error)
	CountByChatID(ctx context.Context, chatID uint) (int64, error)
}
