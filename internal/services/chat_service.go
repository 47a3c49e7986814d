// File: internal/services/chat_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/policylens/policylens/internal/apperr"
	"github.com/policylens/policylens/internal/domain"
	"github.com/policylens/policylens/internal/repository/chat"
	"github.com/policylens/policylens/internal/repository/message"
	"github.com/policylens/policylens/internal/services/ai"
)

// ChatService owns the Chat/Message lifecycle: lazy session creation on the
// first turn, deterministic history reconstruction for the generation
// gateway, and cascading deletes.
type ChatService struct {
	chatRepo    chat.ChatRepository
	messageRepo message.MessageRepository
	generation  *GenerationService
	logger      Logger
}

func NewChatService(
	chatRepo chat.ChatRepository,
	messageRepo message.MessageRepository,
	generation *GenerationService,
	logger Logger,
) (*ChatService, error) {
	if chatRepo == nil {
		return nil, errors.New("chat repository is required")
	}
	if messageRepo == nil {
		return nil, errors.New("message repository is required")
	}
	if generation == nil {
		return nil, errors.New("generation service is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	return &ChatService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		generation:  generation,
		logger:      logger,
	}, nil
}

// AppendResult reports the chat a user turn was appended to and whether
// that chat was created lazily for this turn.
type AppendResult struct {
	Chat    *domain.Chat
	Message *domain.Message
	Created bool
}

// SendResult is the outcome of a full send-and-reply exchange.
type SendResult struct {
	Chat       *domain.Chat
	NewMessage *domain.Message
	BotMessage *domain.Message
}

// AppendUserTurn persists a user message. When chatID is zero a new chat is
// created with a generated title; otherwise the chat must exist and belong
// to userID. The chat's last message mirror is updated to text.
func (s *ChatService) AppendUserTurn(ctx context.Context, userID, chatID uint, text string) (*AppendResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.NewInvalidArgument("append_user_turn", "message text is required")
	}

	var chatRecord *domain.Chat
	var created bool
	if chatID == 0 {
		title, err := s.generation.Title(ctx, text)
		if err != nil {
			return nil, err
		}
		chatRecord, err = s.chatRepo.Create(ctx, &domain.Chat{UserID: userID, Title: title})
		if err != nil {
			return nil, apperr.NewStorageFailure("append_user_turn", "could not create chat", err)
		}
		created = true
		s.logger.Info("chat created lazily", "chat_id", chatRecord.ID, "user_id", userID)
	} else {
		var err error
		chatRecord, err = s.chatRepo.FindByIDAndUserID(ctx, chatID, userID)
		if err != nil {
			if errors.Is(err, chat.ErrChatNotFound) {
				return nil, apperr.NewNotFound("append_user_turn", "chat not found")
			}
			return nil, apperr.NewStorageFailure("append_user_turn", "could not load chat", err)
		}
	}

	msg, err := s.messageRepo.Create(ctx, &domain.Message{
		ChatID:  chatRecord.ID,
		Role:    domain.RoleUser,
		Message: text,
	})
	if err != nil {
		return nil, apperr.NewStorageFailure("append_user_turn", "could not persist message", err)
	}

	if err := s.chatRepo.UpdateLastMessage(ctx, chatRecord.ID, text); err != nil {
		return nil, apperr.NewStorageFailure("append_user_turn", "could not update chat", err)
	}
	chatRecord.LastMessage = text

	return &AppendResult{Chat: chatRecord, Message: msg, Created: created}, nil
}

// GenerateReply asks the gateway for the assistant's next turn and persists
// it. history must be exactly the messages that existed before the user turn
// being answered, in ascending creation order; each entry is trimmed before
// it is handed to the gateway. A failed generation leaves the already
// persisted user turn in place.
func (s *ChatService) GenerateReply(ctx context.Context, chatID uint, history []domain.Message, prompt string) (*domain.Message, error) {
	turns := make([]ai.Turn, 0, len(history))
	for _, m := range history {
		turns = append(turns, ai.Turn{Role: m.Role, Text: strings.TrimSpace(m.Message)})
	}

	reply, err := s.generation.ChatReply(ctx, turns, prompt)
	if err != nil {
		return nil, err
	}

	msg, err := s.messageRepo.Create(ctx, &domain.Message{
		ChatID:  chatID,
		Role:    domain.RoleModel,
		Message: reply,
	})
	if err != nil {
		return nil, apperr.NewStorageFailure("generate_reply", "could not persist reply", err)
	}

	return msg, nil
}

// SendMessage runs the full two-step exchange: it captures the history that
// exists before the new turn, appends the user turn durably, then generates
// and persists the assistant's reply against that history.
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID uint, text string) (*SendResult, error) {
	var history []domain.Message
	if chatID != 0 {
		if _, err := s.loadOwnedChat(ctx, "send_message", chatID, userID); err != nil {
			return nil, err
		}
		var err error
		history, err = s.messageRepo.FindByChatID(ctx, chatID)
		if err != nil {
			return nil, apperr.NewStorageFailure("send_message", "could not load chat history", err)
		}
	}

	appended, err := s.AppendUserTurn(ctx, userID, chatID, text)
	if err != nil {
		return nil, err
	}

	botMessage, err := s.GenerateReply(ctx, appended.Chat.ID, history, appended.Message.Message)
	if err != nil {
		// The user turn stays persisted; the caller may retry the reply.
		s.logger.Warn("reply generation failed after user turn persisted",
			"chat_id", appended.Chat.ID, "error", err)
		return nil, err
	}

	return &SendResult{
		Chat:       appended.Chat,
		NewMessage: appended.Message,
		BotMessage: botMessage,
	}, nil
}

// GetUserChats lists the caller's chats, newest first.
func (s *ChatService) GetUserChats(ctx context.Context, userID uint) ([]domain.Chat, error) {
	chats, err := s.chatRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.NewStorageFailure("get_user_chats", "could not fetch chats", err)
	}
	return chats, nil
}

// GetChat loads one chat owned by the caller.
func (s *ChatService) GetChat(ctx context.Context, userID, chatID uint) (*domain.Chat, error) {
	return s.loadOwnedChat(ctx, "get_chat", chatID, userID)
}

// GetChatMessages lists a chat's messages in ascending creation order.
func (s *ChatService) GetChatMessages(ctx context.Context, userID, chatID uint) ([]domain.Message, error) {
	if _, err := s.loadOwnedChat(ctx, "get_chat_messages", chatID, userID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindByChatID(ctx, chatID)
	if err != nil {
		return nil, apperr.NewStorageFailure("get_chat_messages", "could not fetch messages", err)
	}
	return messages, nil
}

// DeleteChat removes the chat and every one of its messages.
func (s *ChatService) DeleteChat(ctx context.Context, userID, chatID uint) error {
	err := s.chatRepo.DeleteWithMessages(ctx, chatID, userID)
	if err != nil {
		if errors.Is(err, chat.ErrChatNotFound) {
			return apperr.NewNotFound("delete_chat", "chat not found")
		}
		return apperr.NewStorageFailure("delete_chat", "could not delete chat", err)
	}

	s.logger.Info("chat deleted with its messages", "chat_id", chatID, "user_id", userID)
	return nil
}

func (s *ChatService) loadOwnedChat(ctx context.Context, operation string, chatID, userID uint) (*domain.Chat, error) {
	chatRecord, err := s.chatRepo.FindByIDAndUserID(ctx, chatID, userID)
	if err != nil {
		if errors.Is(err, chat.ErrChatNotFound) {
			return nil, apperr.NewNotFound(operation, "chat not found")
		}
		return nil, apperr.NewStorageFailure(operation, "could not load chat", err)
	}
	return chatRecord, nil
}
