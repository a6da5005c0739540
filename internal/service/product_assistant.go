package service

import (
	"context"
	"fmt"
	"time"

	"support-service/internal/llm"
	"support-service/internal/models"
	"support-service/internal/util"

	"go.uber.org/zap"
)

// CatalogStore is the store slice the product assistant reads
type CatalogStore interface {
	GetActiveProducts(ctx context.Context, limit int) ([]models.Product, error)
}

// ProductAssistant answers catalog-wide questions. Unlike the support
// chat, replies are not persisted to any transcript.
type ProductAssistant struct {
	store  CatalogStore
	llm    Completer
	logger *zap.Logger
}

// NewProductAssistant creates a new product assistant
func NewProductAssistant(store CatalogStore, completer Completer) *ProductAssistant {
	return &ProductAssistant{
		store:  store,
		llm:    completer,
		logger: util.GetLogger(),
	}
}

// Ask renders the whole active catalog into the prompt and returns the
// provider's reply, or the catalog fallback on a malformed response.
func (a *ProductAssistant) Ask(ctx context.Context, message string) (string, error) {
	ctx, span := util.StartSpan(ctx, "ProductAssistant.Ask")
	defer span.End()

	products, err := a.store.GetActiveProducts(ctx, 0)
	if err != nil {
		return "", fmt.Errorf("failed to load catalog: %w", err)
	}

	prompt := llm.BuildCatalogPrompt(llm.RenderCatalogContext(products), message)

	start := time.Now()
	reply, err := a.llm.Complete(ctx, prompt)
	util.CompletionLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}

	if reply == "" {
		util.CompletionFallbacksTotal.Inc()
		reply = llm.CatalogFallbackReply
	}
	return reply, nil
}
