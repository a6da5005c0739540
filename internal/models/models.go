package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Role is the account capability tag. It is checked once at the
// request-authorization boundary, never re-derived inside handlers.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an account
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ProductImage is one image reference attached to a product
type ProductImage struct {
	URL     string `json:"url"`
	AltText string `json:"alt_text"`
}

// ProductImages is stored as a JSONB column
type ProductImages []ProductImage

func (p ProductImages) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p)
}

func (p *ProductImages) Scan(src interface{}) error {
	if src == nil {
		*p = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported type for product images: %T", src)
	}
	return json.Unmarshal(b, p)
}

// Product represents a catalog item
type Product struct {
	ID          int64         `db:"id" json:"id"`
	Name        string        `db:"name" json:"name"`
	Description string        `db:"description" json:"description"`
	Price       float64       `db:"price" json:"price"`
	Stock       int           `db:"stock" json:"stock"`
	Category    string        `db:"category" json:"category"`
	IsActive    bool          `db:"is_active" json:"is_active"`
	Images      ProductImages `db:"images" json:"images"`
	CreatedBy   int64         `db:"created_by" json:"created_by"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// ShippingAddress is stored as a JSONB column on orders
type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

func (a ShippingAddress) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *ShippingAddress) Scan(src interface{}) error {
	if src == nil {
		*a = ShippingAddress{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported type for shipping address: %T", src)
	}
	return json.Unmarshal(b, a)
}

// Order represents a customer order
type Order struct {
	ID              int64           `db:"id" json:"id"`
	UserID          int64           `db:"user_id" json:"user_id"`
	Status          string          `db:"status" json:"status"`
	PaymentStatus   string          `db:"payment_status" json:"payment_status"`
	PaymentMethod   string          `db:"payment_method" json:"payment_method"`
	ShippingAddress ShippingAddress `db:"shipping_address" json:"shipping_address"`
	Notes           string          `db:"notes" json:"notes,omitempty"`
	TotalAmount     float64         `db:"total_amount" json:"total_amount"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// OrderItem represents one line of an order. UnitPrice is the catalog
// price captured at order time, not the current price.
type OrderItem struct {
	ID        int64   `db:"id" json:"id"`
	OrderID   int64   `db:"order_id" json:"order_id"`
	ProductID int64   `db:"product_id" json:"product_id"`
	Quantity  int     `db:"quantity" json:"quantity"`
	UnitPrice float64 `db:"unit_price" json:"unit_price"`
}

// OrderItemDetail is an order line joined with its product. ListPrice is
// the current catalog price; admin list views re-price lines with it.
type OrderItemDetail struct {
	ProductID   int64   `db:"product_id" json:"product_id"`
	ProductName string  `db:"product_name" json:"product"`
	Quantity    int     `db:"quantity" json:"quantity"`
	UnitPrice   float64 `db:"unit_price" json:"price"`
	ListPrice   float64 `db:"list_price" json:"-"`
}

// OrderWithItems bundles an order with its joined lines
type OrderWithItems struct {
	Order
	Items []OrderItemDetail `json:"items"`
}

// Order statuses. Forward-only in the admin UI; the store itself permits
// any overwrite.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment statuses
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusRefunded  = "refunded"
)

// Message roles
const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Chat is the single transcript owned by one account
type Chat struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ChatMessage is one transcript entry. Immutable once appended;
// insertion order is the only ordering guarantee.
type ChatMessage struct {
	ID        int64     `db:"id" json:"-"`
	ChatID    int64     `db:"chat_id" json:"-"`
	Role      string    `db:"role" json:"role"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"timestamp"`
}

// ChatSummary is a transcript with its owner joined, for the admin viewer
type ChatSummary struct {
	Chat
	UserName     string `db:"user_name" json:"user_name"`
	UserEmail    string `db:"user_email" json:"user_email"`
	MessageCount int    `db:"message_count" json:"message_count"`
}

// CategoryStat is one row of the per-category product breakdown
type CategoryStat struct {
	Category   string `db:"category" json:"category"`
	Count      int    `db:"count" json:"count"`
	TotalStock int    `db:"total_stock" json:"total_stock"`
}

// DashboardCounts holds the collection sizes shown on the admin dashboard
type DashboardCounts struct {
	Users    int `db:"users" json:"users"`
	Products int `db:"products" json:"products"`
	Orders   int `db:"orders" json:"orders"`
	Chats    int `db:"chats" json:"chats"`
}

// DashboardStats is the admin dashboard payload
type DashboardStats struct {
	Counts       DashboardCounts `json:"counts"`
	RecentOrders []AdminOrder    `json:"recent_orders"`
	ProductStats []CategoryStat  `json:"product_stats"`
	RecentChats  []ChatSummary   `json:"recent_chats"`
}

// OrderWithUser is an order with its owner joined
type OrderWithUser struct {
	Order
	UserName  string `db:"user_name" json:"user_name"`
	UserEmail string `db:"user_email" json:"user_email"`
}

// AdminOrder is an order as shown in admin views: owner joined and lines
// re-priced from the live catalog
type AdminOrder struct {
	OrderWithUser
	Items []AdminOrderItem `json:"items"`
}

// AdminOrderItem is an order line priced at the current catalog price
type AdminOrderItem struct {
	ProductID int64   `json:"product_id"`
	Product   string  `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}
