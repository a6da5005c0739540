package service

import (
	"context"
	"fmt"

	"support-service/internal/broker"
	"support-service/internal/models"
	"support-service/internal/store"
	"support-service/internal/util"

	"go.uber.org/zap"
)

// OrderService handles order business logic
type OrderService struct {
	store  *store.Store
	events *broker.EventPublisher
	logger *zap.Logger
}

// NewOrderService creates a new order service. events may be nil.
func NewOrderService(store *store.Store, events *broker.EventPublisher) *OrderService {
	return &OrderService{
		store:  store,
		events: events,
		logger: util.GetLogger(),
	}
}

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	Items           []OrderItemRequest     `json:"items" binding:"required,min=1"`
	PaymentMethod   string                 `json:"payment_method" binding:"required"`
	ShippingAddress models.ShippingAddress `json:"shipping_address" binding:"required"`
	Notes           string                 `json:"notes"`
}

// OrderItemRequest represents an item in an order
type OrderItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// CreateOrder places an order for the account. Unit prices are
// snapshotted from the catalog at this moment; the total is their sum
// and is never recomputed afterwards outside admin display views.
func (s *OrderService) CreateOrder(ctx context.Context, userID int64, req *CreateOrderRequest) (*models.OrderWithItems, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	products, err := s.validateOrderItems(ctx, req.Items)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("invalid_items").Inc()
		return nil, err
	}

	order := &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
		TotalAmount:     s.calculateTotal(req.Items, products),
	}

	items := make([]models.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: products[item.ProductID].Price,
		}
	}

	if err := s.store.CreateOrder(ctx, order, items); err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", userID))

	if s.events != nil {
		eventItems := make([]models.OrderItemData, len(items))
		for i, item := range items {
			eventItems[i] = models.OrderItemData{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			}
		}
		event := &models.OrderCreatedEvent{
			BaseEvent:   broker.NewBaseEvent(models.EventTypeOrderCreated),
			OrderID:     order.ID,
			UserID:      userID,
			TotalAmount: order.TotalAmount,
			Items:       eventItems,
		}
		if err := s.events.PublishOrderCreated(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
		}
	}

	return s.store.GetOrderForUser(ctx, order.ID, userID)
}

// UpdateStatus overwrites an order's status (admin operation) and
// publishes the change.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status string) (*models.Order, error) {
	oldStatus, order, err := s.store.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	if s.events != nil && oldStatus != status {
		event := &models.OrderStatusChangedEvent{
			BaseEvent: broker.NewBaseEvent(models.EventTypeOrderStatusChanged),
			OrderID:   orderID,
			OldStatus: oldStatus,
			NewStatus: status,
		}
		if err := s.events.PublishOrderStatusChanged(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
		}
	}

	return order, nil
}

// validateOrderItems checks that every referenced product exists and is active
func (s *OrderService) validateOrderItems(ctx context.Context, items []OrderItemRequest) (map[int64]*models.Product, error) {
	productIDs := make([]int64, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}

	products, err := s.store.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[int64]*models.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	for _, item := range items {
		product, ok := productMap[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("product not found: %d", item.ProductID)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("product not available: %d", item.ProductID)
		}
	}

	return productMap, nil
}

// calculateTotal sums snapshot price times quantity across the lines
func (s *OrderService) calculateTotal(items []OrderItemRequest, products map[int64]*models.Product) float64 {
	var total float64
	for _, item := range items {
		total += products[item.ProductID].Price * float64(item.Quantity)
	}
	return total
}
