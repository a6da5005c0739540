package service

import (
	"context"
	"errors"
	"testing"

	"support-service/internal/llm"
	"support-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogStore struct {
	products []models.Product
	err      error
}

func (f *fakeCatalogStore) GetActiveProducts(ctx context.Context, limit int) ([]models.Product, error) {
	return f.products, f.err
}

func TestAskRendersWholeCatalog(t *testing.T) {
	store := &fakeCatalogStore{products: []models.Product{
		{Name: "USB-C Hub", Category: "Electronics", Price: 29.99, Stock: 60},
		{Name: "Gaming Keyboard", Category: "Gaming", Price: 65, Stock: 25},
	}}
	completer := &fakeCompleter{reply: "We have two products in stock."}
	assistant := NewProductAssistant(store, completer)

	reply, err := assistant.Ask(context.Background(), "What do you sell?")
	require.NoError(t, err)
	assert.Equal(t, "We have two products in stock.", reply)

	require.Len(t, completer.prompts, 1)
	assert.Contains(t, completer.prompts[0], "USB-C Hub")
	assert.Contains(t, completer.prompts[0], "Gaming Keyboard")
	assert.Contains(t, completer.prompts[0], `"What do you sell?"`)
}

func TestAskFallbackOnEmptyReply(t *testing.T) {
	assistant := NewProductAssistant(&fakeCatalogStore{}, &fakeCompleter{reply: ""})

	reply, err := assistant.Ask(context.Background(), "Hello?")
	require.NoError(t, err)
	assert.Equal(t, llm.CatalogFallbackReply, reply)
}

func TestAskProviderError(t *testing.T) {
	assistant := NewProductAssistant(&fakeCatalogStore{}, &fakeCompleter{err: errors.New("boom")})

	_, err := assistant.Ask(context.Background(), "Hello?")
	assert.Error(t, err)
}

func TestAskCatalogError(t *testing.T) {
	assistant := NewProductAssistant(&fakeCatalogStore{err: errors.New("db down")}, &fakeCompleter{})

	_, err := assistant.Ask(context.Background(), "Hello?")
	assert.Error(t, err)
}
