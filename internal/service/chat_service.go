package service

import (
	"context"
	"fmt"
	"time"

	"support-service/internal/broker"
	"support-service/internal/llm"
	"support-service/internal/models"
	"support-service/internal/redisclient"
	"support-service/internal/util"

	"go.uber.org/zap"
)

// ChatStore is the slice of the store the chat pipeline reads and writes
type ChatStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetActiveProducts(ctx context.Context, limit int) ([]models.Product, error)
	GetOrdersByUserID(ctx context.Context, userID int64, limit int) ([]models.OrderWithItems, error)
	AppendChatTurn(ctx context.Context, userID int64, userContent, assistantContent string) ([]models.ChatMessage, error)
	GetChatMessages(ctx context.Context, userID int64) ([]models.ChatMessage, error)
}

// Completer is the outbound completion provider
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const productSampleTTL = 5 * time.Minute

// ChatService runs the per-request support pipeline: assemble context,
// build the prompt, call the provider once, append the turn.
type ChatService struct {
	store             ChatStore
	llm               Completer
	cache             *redisclient.Client
	events            *broker.EventPublisher
	productSampleSize int
	recentOrderCount  int
	logger            *zap.Logger
}

// NewChatService creates a new chat service. cache and events may be nil;
// both are best-effort collaborators.
func NewChatService(
	store ChatStore,
	completer Completer,
	cache *redisclient.Client,
	events *broker.EventPublisher,
	productSampleSize int,
	recentOrderCount int,
) *ChatService {
	return &ChatService{
		store:             store,
		llm:               completer,
		cache:             cache,
		events:            events,
		productSampleSize: productSampleSize,
		recentOrderCount:  recentOrderCount,
		logger:            util.GetLogger(),
	}
}

// ChatTurn is the outcome of one persisted exchange
type ChatTurn struct {
	Reply    string               `json:"reply"`
	Messages []models.ChatMessage `json:"messages"`
}

// SendMessage runs one support exchange for the account. The transcript
// is only mutated after a reply exists, so a provider failure leaves it
// untouched; a persistence failure after a successful completion loses
// the reply (the upstream call is not compensated).
func (s *ChatService) SendMessage(ctx context.Context, userID int64, message string) (*ChatTurn, error) {
	ctx, span := util.StartSpan(ctx, "ChatService.SendMessage")
	defer span.End()

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		util.ChatTurnsFailedTotal.WithLabelValues("user_lookup").Inc()
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	products, err := s.productSample(ctx)
	if err != nil {
		util.ChatTurnsFailedTotal.WithLabelValues("catalog").Inc()
		return nil, fmt.Errorf("failed to load product sample: %w", err)
	}

	orders, err := s.store.GetOrdersByUserID(ctx, userID, s.recentOrderCount)
	if err != nil {
		util.ChatTurnsFailedTotal.WithLabelValues("orders").Inc()
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}

	customerContext := llm.RenderCustomerContext(llm.CustomerContext{
		User:     user,
		Products: products,
		Orders:   orders,
	})
	prompt := llm.BuildSupportPrompt(customerContext, message)

	start := time.Now()
	reply, err := s.llm.Complete(ctx, prompt)
	util.CompletionLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		util.ChatTurnsFailedTotal.WithLabelValues("provider").Inc()
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	fallback := reply == ""
	if fallback {
		util.CompletionFallbacksTotal.Inc()
		reply = llm.FallbackReply
	}

	messages, err := s.store.AppendChatTurn(ctx, userID, message, reply)
	if err != nil {
		util.ChatTurnsFailedTotal.WithLabelValues("persistence").Inc()
		return nil, fmt.Errorf("failed to persist chat turn: %w", err)
	}

	util.ChatTurnsTotal.Inc()

	if s.events != nil {
		event := &models.ChatTurnCompletedEvent{
			BaseEvent:   broker.NewBaseEvent(models.EventTypeChatTurnCompleted),
			UserID:      userID,
			PromptChars: len(prompt),
			ReplyChars:  len(reply),
			Fallback:    fallback,
		}
		if err := s.events.PublishChatTurnCompleted(ctx, event); err != nil {
			s.logger.Error("Failed to publish ChatTurnCompleted event", zap.Error(err))
		}
	}

	return &ChatTurn{Reply: reply, Messages: messages}, nil
}

// GetMessages returns the account's full transcript, empty before the
// first exchange.
func (s *ChatService) GetMessages(ctx context.Context, userID int64) ([]models.ChatMessage, error) {
	return s.store.GetChatMessages(ctx, userID)
}

// productSample returns the bounded catalog prefix rendered into every
// support prompt, cached briefly since it is identical across users.
func (s *ChatService) productSample(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		products, err := s.cache.GetProductSample(ctx)
		if err != nil {
			s.logger.Warn("Product sample cache read failed", zap.Error(err))
		} else if products != nil {
			return products, nil
		}
	}

	products, err := s.store.GetActiveProducts(ctx, s.productSampleSize)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetProductSample(ctx, products, productSampleTTL); err != nil {
			s.logger.Warn("Product sample cache write failed", zap.Error(err))
		}
	}
	return products, nil
}
