package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"support-service/internal/llm"
	"support-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatStore struct {
	user     *models.User
	products []models.Product
	orders   []models.OrderWithItems
	messages []models.ChatMessage

	appendErr error
}

func (f *fakeChatStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if f.user == nil {
		return nil, errors.New("user not found")
	}
	return f.user, nil
}

func (f *fakeChatStore) GetActiveProducts(ctx context.Context, limit int) ([]models.Product, error) {
	if limit > 0 && limit < len(f.products) {
		return f.products[:limit], nil
	}
	return f.products, nil
}

func (f *fakeChatStore) GetOrdersByUserID(ctx context.Context, userID int64, limit int) ([]models.OrderWithItems, error) {
	return f.orders, nil
}

func (f *fakeChatStore) AppendChatTurn(ctx context.Context, userID int64, userContent, assistantContent string) ([]models.ChatMessage, error) {
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	now := time.Now()
	f.messages = append(f.messages,
		models.ChatMessage{Role: models.MessageRoleUser, Content: userContent, CreatedAt: now},
		models.ChatMessage{Role: models.MessageRoleAssistant, Content: assistantContent, CreatedAt: now},
	)
	out := make([]models.ChatMessage, len(f.messages))
	copy(out, f.messages)
	return out, nil
}

func (f *fakeChatStore) GetChatMessages(ctx context.Context, userID int64) ([]models.ChatMessage, error) {
	out := make([]models.ChatMessage, len(f.messages))
	copy(out, f.messages)
	return out, nil
}

type fakeCompleter struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func newTestChatService(store *fakeChatStore, completer *fakeCompleter) *ChatService {
	return NewChatService(store, completer, nil, nil, 5, 3)
}

func testUser() *models.User {
	return &models.User{ID: 1, Name: "John Doe", Email: "john@example.com", Role: models.RoleUser}
}

func TestSendMessageAppendsTurn(t *testing.T) {
	store := &fakeChatStore{user: testUser()}
	completer := &fakeCompleter{reply: "Happy to help with that!"}
	svc := newTestChatService(store, completer)

	turn, err := svc.SendMessage(context.Background(), 1, "Hi")
	require.NoError(t, err)

	assert.Equal(t, "Happy to help with that!", turn.Reply)
	require.Len(t, turn.Messages, 2)
	assert.Equal(t, models.MessageRoleUser, turn.Messages[0].Role)
	assert.Equal(t, "Hi", turn.Messages[0].Content)
	assert.Equal(t, models.MessageRoleAssistant, turn.Messages[1].Role)
	assert.Equal(t, "Happy to help with that!", turn.Messages[1].Content)
}

func TestSendMessageTranscriptGrows(t *testing.T) {
	store := &fakeChatStore{user: testUser()}
	completer := &fakeCompleter{reply: "ok"}
	svc := newTestChatService(store, completer)

	for i := 1; i <= 3; i++ {
		turn, err := svc.SendMessage(context.Background(), 1, "message")
		require.NoError(t, err)
		assert.Len(t, turn.Messages, i*2)
	}

	messages, err := svc.GetMessages(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, messages, 6)
}

func TestSendMessagePromptCarriesContext(t *testing.T) {
	store := &fakeChatStore{
		user: testUser(),
		products: []models.Product{
			{Name: "Wireless Mouse", Price: 19.99, Description: "Ergonomic wireless mouse"},
		},
		orders: []models.OrderWithItems{
			{Order: models.Order{ID: 7, Status: models.OrderStatusPending, TotalAmount: 19.99}},
		},
	}
	completer := &fakeCompleter{reply: "ok"}
	svc := newTestChatService(store, completer)

	_, err := svc.SendMessage(context.Background(), 1, "Where is order 7?")
	require.NoError(t, err)

	require.Len(t, completer.prompts, 1)
	prompt := completer.prompts[0]
	assert.Contains(t, prompt, "Name: John Doe")
	assert.Contains(t, prompt, "Wireless Mouse")
	assert.Contains(t, prompt, "Order ID: 7")
	assert.Contains(t, prompt, `"Where is order 7?"`)
}

func TestSendMessageFallbackOnEmptyReply(t *testing.T) {
	store := &fakeChatStore{user: testUser()}
	completer := &fakeCompleter{reply: ""}
	svc := newTestChatService(store, completer)

	turn, err := svc.SendMessage(context.Background(), 1, "Hi")
	require.NoError(t, err)

	assert.Equal(t, llm.FallbackReply, turn.Reply)
	require.Len(t, turn.Messages, 2)
	assert.Equal(t, llm.FallbackReply, turn.Messages[1].Content)
}

func TestSendMessageProviderErrorLeavesTranscript(t *testing.T) {
	store := &fakeChatStore{user: testUser()}
	completer := &fakeCompleter{err: errors.New("connection refused")}
	svc := newTestChatService(store, completer)

	_, err := svc.SendMessage(context.Background(), 1, "Hi")
	require.Error(t, err)

	messages, err := svc.GetMessages(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestSendMessagePersistenceError(t *testing.T) {
	store := &fakeChatStore{user: testUser(), appendErr: errors.New("db down")}
	completer := &fakeCompleter{reply: "ok"}
	svc := newTestChatService(store, completer)

	_, err := svc.SendMessage(context.Background(), 1, "Hi")
	assert.Error(t, err)
}

func TestGetMessagesEmptyBeforeFirstTurn(t *testing.T) {
	store := &fakeChatStore{user: testUser()}
	svc := newTestChatService(store, &fakeCompleter{})

	messages, err := svc.GetMessages(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, messages)
}
