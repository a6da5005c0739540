package llm

import (
	"testing"

	"support-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRenderCustomerContext(t *testing.T) {
	rendered := RenderCustomerContext(CustomerContext{
		User: &models.User{Name: "John Doe", Email: "john@example.com", Role: models.RoleUser},
		Products: []models.Product{
			{Name: "Wireless Mouse", Price: 19.99, Description: "Ergonomic wireless mouse"},
		},
		Orders: []models.OrderWithItems{
			{
				Order: models.Order{ID: 42, Status: models.OrderStatusShipped, TotalAmount: 39.98},
				Items: []models.OrderItemDetail{
					{ProductName: "Wireless Mouse", Quantity: 2, UnitPrice: 19.99},
				},
			},
		},
	})

	assert.Contains(t, rendered, "Name: John Doe")
	assert.Contains(t, rendered, "Email: john@example.com")
	assert.Contains(t, rendered, "Role: user")
	assert.Contains(t, rendered, "• Wireless Mouse - $19.99\nDescription: Ergonomic wireless mouse")
	assert.Contains(t, rendered, "Order ID: 42")
	assert.Contains(t, rendered, "Status: shipped")
	assert.Contains(t, rendered, "  - Wireless Mouse (Qty: 2, Price: $19.99)")
	assert.Contains(t, rendered, "Total: $39.98")
	assert.NotContains(t, rendered, noRecentOrders)
}

func TestRenderCustomerContextNoOrders(t *testing.T) {
	rendered := RenderCustomerContext(CustomerContext{
		User: &models.User{Name: "Jane", Email: "jane@example.com", Role: models.RoleUser},
	})

	assert.Contains(t, rendered, "No recent orders found.")
}

func TestRenderCustomerContextPriceFormatting(t *testing.T) {
	rendered := RenderCustomerContext(CustomerContext{
		User: &models.User{Name: "Jane", Email: "jane@example.com"},
		Products: []models.Product{
			{Name: "Laptop Stand", Price: 25.50},
			{Name: "Gaming Keyboard", Price: 65},
		},
	})

	// Trailing zeros are trimmed, whole prices drop the decimal point.
	assert.Contains(t, rendered, "Laptop Stand - $25.5")
	assert.Contains(t, rendered, "Gaming Keyboard - $65")
}

func TestBuildSupportPrompt(t *testing.T) {
	prompt := BuildSupportPrompt("CONTEXT-BLOCK", "Where is my order?")

	assert.Contains(t, prompt, "customer query assistant for an e-commerce website")
	assert.Contains(t, prompt, "Never talk like an AI.")
	assert.Contains(t, prompt, "CONTEXT-BLOCK")
	assert.Contains(t, prompt, `Now respond to this query: "Where is my order?"`)
}

func TestBuildCatalogPrompt(t *testing.T) {
	catalog := RenderCatalogContext([]models.Product{
		{Name: "USB-C Hub", Category: "Electronics", Price: 29.99, Stock: 60, Description: "Multiport adapter"},
	})
	prompt := BuildCatalogPrompt(catalog, "Do you have hubs in stock?")

	assert.Contains(t, prompt, "- USB-C Hub (Electronics): $29.99 - 60 in stock")
	assert.Contains(t, prompt, "Multiport adapter")
	assert.Contains(t, prompt, `User Question: "Do you have hubs in stock?"`)
}
