package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"support-service/internal/llm"
	"support-service/internal/models"
	"support-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubChatStore struct {
	user     *models.User
	messages []models.ChatMessage
}

func (s *stubChatStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.user, nil
}

func (s *stubChatStore) GetActiveProducts(ctx context.Context, limit int) ([]models.Product, error) {
	return nil, nil
}

func (s *stubChatStore) GetOrdersByUserID(ctx context.Context, userID int64, limit int) ([]models.OrderWithItems, error) {
	return nil, nil
}

func (s *stubChatStore) AppendChatTurn(ctx context.Context, userID int64, userContent, assistantContent string) ([]models.ChatMessage, error) {
	now := time.Now()
	s.messages = append(s.messages,
		models.ChatMessage{Role: models.MessageRoleUser, Content: userContent, CreatedAt: now},
		models.ChatMessage{Role: models.MessageRoleAssistant, Content: assistantContent, CreatedAt: now},
	)
	return s.messages, nil
}

func (s *stubChatStore) GetChatMessages(ctx context.Context, userID int64) ([]models.ChatMessage, error) {
	if s.messages == nil {
		return []models.ChatMessage{}, nil
	}
	return s.messages, nil
}

type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func newChatTestRouter(store *stubChatStore, completer *stubCompleter) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := &Handler{
		chat:   service.NewChatService(store, completer, nil, nil, 5, 3),
		logger: zap.NewNop(),
	}

	router := gin.New()
	authed := router.Group("/api", func(c *gin.Context) {
		c.Set(userContextKey, store.user)
		c.Next()
	})
	authed.POST("/chat", h.sendMessage)
	authed.GET("/chat", h.getMessages)
	return router
}

func TestSendMessageHandler(t *testing.T) {
	store := &stubChatStore{user: &models.User{ID: 1, Name: "John Doe", Email: "john@example.com", Role: models.RoleUser}}
	router := newChatTestRouter(store, &stubCompleter{reply: "Hello John! How can I help you today?"})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message": "Hi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var turn service.ChatTurn
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &turn))
	assert.Equal(t, "Hello John! How can I help you today?", turn.Reply)
	require.Len(t, turn.Messages, 2)
	assert.Equal(t, "user", turn.Messages[0].Role)
	assert.Equal(t, "Hi", turn.Messages[0].Content)
	assert.Equal(t, "assistant", turn.Messages[1].Role)
}

func TestSendMessageHandlerEmptyMessage(t *testing.T) {
	store := &stubChatStore{user: &models.User{ID: 1, Role: models.RoleUser}}
	router := newChatTestRouter(store, &stubCompleter{reply: "unused"})

	for _, body := range []string{`{}`, `{"message": ""}`, `{"message": "   "}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		assert.Contains(t, w.Body.String(), "Message is required")
	}

	// Nothing was appended for any rejected request.
	assert.Empty(t, store.messages)
}

func TestSendMessageHandlerFallback(t *testing.T) {
	store := &stubChatStore{user: &models.User{ID: 1, Role: models.RoleUser}}
	router := newChatTestRouter(store, &stubCompleter{reply: ""})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message": "help"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), llm.FallbackReply)
}

func TestGetMessagesHandler(t *testing.T) {
	store := &stubChatStore{user: &models.User{ID: 1, Role: models.RoleUser}}
	router := newChatTestRouter(store, &stubCompleter{reply: "ok"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chat", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message": "Hi"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(httptest.NewRecorder(), req)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chat", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var messages []models.ChatMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &messages))
	assert.Len(t, messages, 2)
}
