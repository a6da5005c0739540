package llm

import (
	"fmt"
	"strconv"
	"strings"

	"support-service/internal/models"
)

// FallbackReply is appended verbatim when the provider returns a 200
// with no usable candidate text.
const FallbackReply = "Sorry, I couldn't process that. Could you rephrase it?"

// CatalogFallbackReply is the product assistant's equivalent.
const CatalogFallbackReply = "I apologize, but I couldn't process that request."

const noRecentOrders = "No recent orders found."

// CustomerContext is the per-user data rendered into the support prompt
type CustomerContext struct {
	User     *models.User
	Products []models.Product
	Orders   []models.OrderWithItems
}

// RenderCustomerContext formats the account, a catalog sample, and the
// account's recent orders as prompt-ready text.
func RenderCustomerContext(cc CustomerContext) string {
	productLines := make([]string, len(cc.Products))
	for i, p := range cc.Products {
		productLines[i] = fmt.Sprintf("• %s - $%s\nDescription: %s",
			p.Name, formatPrice(p.Price), p.Description)
	}

	orderBlocks := make([]string, len(cc.Orders))
	for i, o := range cc.Orders {
		itemLines := make([]string, len(o.Items))
		for j, item := range o.Items {
			itemLines[j] = fmt.Sprintf("  - %s (Qty: %d, Price: $%s)",
				item.ProductName, item.Quantity, formatPrice(item.UnitPrice))
		}
		orderBlocks[i] = fmt.Sprintf("Order ID: %d\nStatus: %s\nItems:\n%s\nTotal: $%s\n",
			o.ID, o.Status, strings.Join(itemLines, "\n"), formatPrice(o.TotalAmount))
	}

	orderList := strings.Join(orderBlocks, "\n\n")
	if orderList == "" {
		orderList = noRecentOrders
	}

	return fmt.Sprintf(`
Customer Details:
Name: %s
Email: %s
Role: %s

Top Products:
%s

Recent Orders:
%s
`, cc.User.Name, cc.User.Email, cc.User.Role, strings.Join(productLines, "\n"), orderList)
}

// BuildSupportPrompt merges the fixed instruction block, the rendered
// context, and the user's message into one prompt. The message is
// embedded verbatim; no sanitization is applied.
func BuildSupportPrompt(customerContext, message string) string {
	return fmt.Sprintf(`
You are a polite, knowledgeable customer query assistant for an e-commerce website.
Your job is to help the customer with product details, order updates, refund policies, or return issues.

When discussing orders:
- Always mention product names, quantities, and prices
- Show order status and total amount
- Format all prices with $ symbol
- Use bullet points for listing items

Never talk like an AI. Be natural and helpful.
If the user says "Hi", greet back and offer help.
Only talk about things relevant to their shopping experience.

Here's the customer and product context:
%s

Now respond to this query: "%s"
`, customerContext, message)
}

// RenderCatalogContext formats the active catalog for the product assistant
func RenderCatalogContext(products []models.Product) string {
	lines := make([]string, len(products))
	for i, p := range products {
		lines[i] = fmt.Sprintf("- %s (%s): $%s - %d in stock\n  %s",
			p.Name, p.Category, formatPrice(p.Price), p.Stock, p.Description)
	}
	return strings.Join(lines, "\n")
}

// BuildCatalogPrompt merges the product assistant instruction block, the
// rendered catalog, and the user's question.
func BuildCatalogPrompt(catalogContext, message string) string {
	return fmt.Sprintf(`
You are an AI product assistant for our inventory management system.
You have access to our current product catalog:

%s

Your tasks:
- Answer questions about specific products (price, stock, description)
- Help find products by category or features
- Provide inventory status updates
- Make product recommendations based on user needs
- Explain product features and specifications
- Compare similar products

Always:
- Be concise and professional
- Include specific product details when relevant
- Mention stock availability
- Format prices with $ symbol
- Use bullet points for lists
- Stay within the scope of available product information

User Question: "%s"
Assistant:`, catalogContext, message)
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
