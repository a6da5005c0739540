package service

import (
	"testing"

	"support-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepriceItemsUsesLivePrice(t *testing.T) {
	items := []models.OrderItemDetail{
		{ProductID: 1, ProductName: "Wireless Mouse", Quantity: 2, UnitPrice: 19.99, ListPrice: 24.99},
		{ProductID: 2, ProductName: "USB-C Hub", Quantity: 1, UnitPrice: 29.99, ListPrice: 29.99},
	}

	repriced := repriceItems(items)
	require.Len(t, repriced, 2)

	// The snapshot price is ignored; lines show the current catalog price.
	assert.Equal(t, "Wireless Mouse", repriced[0].Product)
	assert.InDelta(t, 24.99, repriced[0].Price, 1e-9)
	assert.InDelta(t, 49.98, repriced[0].Total, 1e-9)

	assert.InDelta(t, 29.99, repriced[1].Price, 1e-9)
	assert.InDelta(t, 29.99, repriced[1].Total, 1e-9)
}

func TestRepriceItemsEmpty(t *testing.T) {
	assert.Empty(t, repriceItems(nil))
}
