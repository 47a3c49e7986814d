// File: internal/repository/chat/interface.go
package chat

import (
	"context"

	"github.com/policylens/policylens/internal/domain"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error)
	// FindByIDAndUserID loads a chat only when it is owned by userID.
	FindByIDAndUserID(ctx context.Context, chatID, userID uint) (*domain.Chat, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Chat, error)
	UpdateLastMessage(ctx context.Context, chatID uint, text string) error
	// DeleteWithMessages removes the chat and every message belonging to it
	// in a single transaction.
	DeleteWithMessages(ctx context.Context, chatID, userID uint) error
}
