package service

import (
	"testing"

	"support-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotal(t *testing.T) {
	os := &OrderService{}

	items := []OrderItemRequest{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}

	products := map[int64]*models.Product{
		1: {ID: 1, Price: 19.99},
		2: {ID: 2, Price: 49.99},
	}

	total := os.calculateTotal(items, products)

	assert.InDelta(t, 2*19.99+49.99, total, 1e-9)
}

func TestCalculateTotalEmpty(t *testing.T) {
	os := &OrderService{}
	assert.Zero(t, os.calculateTotal(nil, nil))
}

func TestValidateOrderItems(t *testing.T) {
	// Requires a database; covered by the store integration tests.
	t.Skip("Requires mocked store")
}
