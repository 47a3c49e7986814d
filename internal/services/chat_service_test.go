// File: internal/services/chat_service_test.go
package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/policylens/policylens/internal/apperr"
	"github.com/policylens/policylens/internal/domain"
	chatrepo "github.com/policylens/policylens/internal/repository/chat"
	messagerepo "github.com/policylens/policylens/internal/repository/message"
	"github.com/policylens/policylens/internal/services/ai"
)

// completionCall records one request the stub provider received.
type completionCall struct {
	History []ai.Turn
	Prompt  string
}

// stubProvider answers completions from a queue and records every call.
type stubProvider struct {
	replies []string
	err     error
	calls   []completionCall
}

func (p *stubProvider) Complete(ctx context.Context, history []ai.Turn, prompt string) (string, error) {
	p.calls = append(p.calls, completionCall{History: append([]ai.Turn{}, history...), Prompt: prompt})
	if p.err != nil {
		return "", p.err
	}
	if len(p.replies) == 0 {
		return "stub reply", nil
	}
	out := p.replies[0]
	p.replies = p.replies[1:]
	return out, nil
}

func (p *stubProvider) HealthCheck(ctx context.Context) error { return p.err }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Chat{},
		&domain.Message{},
		&domain.Summary{},
		&domain.Translation{},
		&domain.InsurancePolicy{},
	))
	return db
}

func newChatServiceForTest(t *testing.T, provider ai.Provider) (*ChatService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	gen, err := NewGenerationService(provider, &NoOpLogger{})
	require.NoError(t, err)
	svc, err := NewChatService(chatrepo.NewChatRepository(db), messagerepo.NewMessageRepository(db), gen, &NoOpLogger{})
	require.NoError(t, err)
	return svc, db
}

func TestSendMessageCreatesChatLazily(t *testing.T) {
	provider := &stubProvider{replies: []string{"Car Policy Question", "You should check your deductible."}}
	svc, db := newChatServiceForTest(t, provider)

	result, err := svc.SendMessage(context.Background(), 1, 0, "What does my car policy cover?")
	require.NoError(t, err)

	require.NotZero(t, result.Chat.ID)
	require.Equal(t, "Car Policy Question", result.Chat.Title)
	require.Equal(t, "What does my car policy cover?", result.Chat.LastMessage)
	require.Equal(t, domain.RoleUser, result.NewMessage.Role)
	require.Equal(t, domain.RoleModel, result.BotMessage.Role)
	require.Equal(t, "You should check your deductible.", result.BotMessage.Message)

	// Two provider calls: the title and the reply. The reply for a brand
	// new chat sees no prior history.
	require.Len(t, provider.calls, 2)
	require.Empty(t, provider.calls[1].History)

	var count int64
	require.NoError(t, db.Model(&domain.Message{}).Where("chat_id = ?", result.Chat.ID).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestSendMessageReplaysPriorHistoryOnly(t *testing.T) {
	provider := &stubProvider{replies: []string{"Title", "First reply", "Second reply"}}
	svc, _ := newChatServiceForTest(t, provider)

	first, err := svc.SendMessage(context.Background(), 1, 0, "First question")
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), 1, first.Chat.ID, "Second question")
	require.NoError(t, err)

	// The second reply call sees exactly the first exchange, oldest first,
	// and never the turn it is answering.
	last := provider.calls[len(provider.calls)-1]
	require.Equal(t, []ai.Turn{
		{Role: domain.RoleUser, Text: "First question"},
		{Role: domain.RoleModel, Text: "First reply"},
	}, last.History)
	require.Equal(t, "Second question", last.Prompt)
}

func TestSendMessageRejectsBlankText(t *testing.T) {
	svc, _ := newChatServiceForTest(t, &stubProvider{})

	_, err := svc.SendMessage(context.Background(), 1, 0, "   \n ")
	require.Error(t, err)
	require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestSendMessageToUnknownChat(t *testing.T) {
	svc, _ := newChatServiceForTest(t, &stubProvider{})

	_, err := svc.SendMessage(context.Background(), 1, 42, "hello")
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSendMessageToSomeoneElsesChat(t *testing.T) {
	provider := &stubProvider{replies: []string{"Title", "Reply"}}
	svc, _ := newChatServiceForTest(t, provider)

	owned, err := svc.SendMessage(context.Background(), 1, 0, "mine")
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), 2, owned.Chat.ID, "not yours")
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUserTurnSurvivesFailedReply(t *testing.T) {
	provider := &stubProvider{replies: []string{"Title", "First reply"}}
	svc, db := newChatServiceForTest(t, provider)

	first, err := svc.SendMessage(context.Background(), 1, 0, "First question")
	require.NoError(t, err)

	provider.err = errors.New("upstream unavailable")
	_, err = svc.SendMessage(context.Background(), 1, first.Chat.ID, "Second question")
	require.Error(t, err)
	require.Equal(t, apperr.KindGenerationFailure, apperr.KindOf(err))

	// The user turn was durably appended before generation was attempted.
	var messages []domain.Message
	require.NoError(t, db.Where("chat_id = ?", first.Chat.ID).Order("created_at ASC, id ASC").Find(&messages).Error)
	require.Len(t, messages, 3)
	require.Equal(t, "Second question", messages[2].Message)
	require.Equal(t, domain.RoleUser, messages[2].Role)

	var chat domain.Chat
	require.NoError(t, db.First(&chat, first.Chat.ID).Error)
	require.Equal(t, "Second question", chat.LastMessage)
}

func TestLastMessageMirrorsLatestUserTurn(t *testing.T) {
	provider := &stubProvider{replies: []string{"Title", "A long-winded model answer"}}
	svc, _ := newChatServiceForTest(t, provider)

	result, err := svc.SendMessage(context.Background(), 1, 0, "Hello")
	require.NoError(t, err)

	chat, err := svc.GetChat(context.Background(), 1, result.Chat.ID)
	require.NoError(t, err)
	require.Equal(t, "Hello", chat.LastMessage)
}

func TestGetChatMessagesAscending(t *testing.T) {
	provider := &stubProvider{replies: []string{"Title", "r1", "r2"}}
	svc, _ := newChatServiceForTest(t, provider)

	first, err := svc.SendMessage(context.Background(), 1, 0, "q1")
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), 1, first.Chat.ID, "q2")
	require.NoError(t, err)

	messages, err := svc.GetChatMessages(context.Background(), 1, first.Chat.ID)
	require.NoError(t, err)
	require.Len(t, messages, 4)
	require.Equal(t, []string{"q1", "r1", "q2", "r2"}, []string{
		messages[0].Message, messages[1].Message, messages[2].Message, messages[3].Message,
	})
}

func TestDeleteChatRemovesMessages(t *testing.T) {
	provider := &stubProvider{replies: []string{"Title A", "r", "Title B", "r"}}
	svc, db := newChatServiceForTest(t, provider)

	doomed, err := svc.SendMessage(context.Background(), 1, 0, "delete me")
	require.NoError(t, err)
	kept, err := svc.SendMessage(context.Background(), 1, 0, "keep me")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteChat(context.Background(), 1, doomed.Chat.ID))

	var count int64
	require.NoError(t, db.Model(&domain.Message{}).Where("chat_id = ?", doomed.Chat.ID).Count(&count).Error)
	require.Zero(t, count)

	// The sibling chat is untouched.
	require.NoError(t, db.Model(&domain.Message{}).Where("chat_id = ?", kept.Chat.ID).Count(&count).Error)
	require.EqualValues(t, 2, count)

	_, err = svc.GetChat(context.Background(), 1, doomed.Chat.ID)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeleteChatIsOwnerScoped(t *testing.T) {
	provider := &stubProvider{replies: []string{"Title", "r"}}
	svc, _ := newChatServiceForTest(t, provider)

	owned, err := svc.SendMessage(context.Background(), 1, 0, "mine")
	require.NoError(t, err)

	err = svc.DeleteChat(context.Background(), 2, owned.Chat.ID)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// Still there for the real owner.
	_, err = svc.GetChat(context.Background(), 1, owned.Chat.ID)
	require.NoError(t, err)
}

func TestGetUserChatsNewestFirst(t *testing.T) {
	provider := &stubProvider{}
	svc, _ := newChatServiceForTest(t, provider)

	var lastID uint
	for i := 0; i < 3; i++ {
		result, err := svc.SendMessage(context.Background(), 1, 0, fmt.Sprintf("question %d", i))
		require.NoError(t, err)
		lastID = result.Chat.ID
	}

	chats, err := svc.GetUserChats(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, chats, 3)
	require.Equal(t, lastID, chats[0].ID)
}
