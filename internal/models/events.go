package models

import "time"

// Event types
const (
	EventTypeOrderCreated       = "ORDER_CREATED"
	EventTypeOrderStatusChanged = "ORDER_STATUS_CHANGED"
	EventTypeUserDeleted        = "USER_DELETED"
	EventTypeChatTurnCompleted  = "CHAT_TURN_COMPLETED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderItemData represents item data in events
type OrderItemData struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderCreatedEvent published when a customer places an order
type OrderCreatedEvent struct {
	BaseEvent
	OrderID     int64           `json:"order_id"`
	UserID      int64           `json:"user_id"`
	TotalAmount float64         `json:"total_amount"`
	Items       []OrderItemData `json:"items"`
}

// OrderStatusChangedEvent published when an admin overwrites an order status
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID   int64  `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// UserDeletedEvent published when an admin deletes an account
type UserDeletedEvent struct {
	BaseEvent
	UserID int64 `json:"user_id"`
}

// ChatTurnCompletedEvent published after each persisted assistant turn
type ChatTurnCompletedEvent struct {
	BaseEvent
	UserID      int64 `json:"user_id"`
	PromptChars int   `json:"prompt_chars"`
	ReplyChars  int   `json:"reply_chars"`
	Fallback    bool  `json:"fallback"`
}
