// Command seed loads demo accounts, a catalog, and a few orders into the
// database so the service can be exercised locally. It is idempotent per
// email and product name: rerunning skips rows that already exist.
package main

import (
	"context"
	"log"
	"time"

	"support-service/config"
	"support-service/internal/auth"
	"support-service/internal/models"
	"support-service/internal/store"
)

type seedUser struct {
	name     string
	email    string
	password string
	role     models.Role
}

var seedUsers = []seedUser{
	{"Admin User", "admin@example.com", "Admin@123", models.RoleAdmin},
	{"John Doe", "john@example.com", "User@123", models.RoleUser},
	{"Jane Smith", "jane@example.com", "User@123", models.RoleUser},
	{"Michael Johnson", "michael@example.com", "User@123", models.RoleUser},
	{"Sarah Wilson", "sarah@example.com", "User@123", models.RoleUser},
	{"David Brown", "david@example.com", "User@123", models.RoleUser},
}

var seedProducts = []models.Product{
	{
		Name:        "Wireless Mouse",
		Description: "Ergonomic wireless mouse with USB receiver",
		Price:       19.99,
		Stock:       50,
		Category:    "Electronics",
		IsActive:    true,
		Images:      models.ProductImages{{URL: "https://example.com/mouse.jpg", AltText: "Wireless Mouse"}},
	},
	{
		Name:        "Bluetooth Headphones",
		Description: "Noise-cancelling over-ear headphones with 20-hour battery life",
		Price:       49.99,
		Stock:       30,
		Category:    "Electronics",
		IsActive:    true,
		Images:      models.ProductImages{{URL: "https://example.com/headphones.jpg", AltText: "Bluetooth Headphones"}},
	},
	{
		Name:        "Laptop Stand",
		Description: "Adjustable aluminum stand for laptops and tablets",
		Price:       25.50,
		Stock:       45,
		Category:    "Accessories",
		IsActive:    true,
		Images:      models.ProductImages{{URL: "https://example.com/stand.jpg", AltText: "Laptop Stand"}},
	},
	{
		Name:        "Gaming Keyboard",
		Description: "RGB mechanical keyboard with blue switches",
		Price:       65.00,
		Stock:       25,
		Category:    "Gaming",
		IsActive:    true,
		Images:      models.ProductImages{{URL: "https://example.com/keyboard.jpg", AltText: "Gaming Keyboard"}},
	},
	{
		Name:        "USB-C Hub",
		Description: "Multiport adapter with HDMI, USB 3.0 and card reader",
		Price:       29.99,
		Stock:       60,
		Category:    "Electronics",
		IsActive:    true,
		Images:      models.ProductImages{{URL: "https://example.com/hub.jpg", AltText: "USB-C Hub"}},
	},
	{
		Name:        "4K Webcam",
		Description: "Ultra HD webcam with auto-focus and noise-canceling microphone",
		Price:       79.99,
		Stock:       20,
		Category:    "Electronics",
		IsActive:    true,
		Images:      models.ProductImages{{URL: "https://example.com/webcam.jpg", AltText: "4K Webcam"}},
	},
	{
		Name:        "Gaming Mouse Pad",
		Description: "Extended RGB mouse pad with non-slip base, 900x400mm",
		Price:       15.99,
		Stock:       100,
		Category:    "Gaming",
		IsActive:    true,
		Images:      models.ProductImages{{URL: "https://example.com/mousepad.jpg", AltText: "Gaming Mouse Pad"}},
	},
}

func main() {
	cfg := config.Load()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	users, err := ensureUsers(ctx, db)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	admin := users["admin@example.com"]
	if err := ensureProducts(ctx, db, admin.ID); err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}

	if err := ensureOrders(ctx, db, users["john@example.com"]); err != nil {
		log.Fatalf("Failed to seed orders: %v", err)
	}

	log.Println("Seeding completed")
	log.Println("Admin login: admin@example.com / Admin@123")
	log.Println("User logins: john@example.com (and friends) / User@123")
}

func ensureUsers(ctx context.Context, db *store.Store) (map[string]*models.User, error) {
	out := make(map[string]*models.User, len(seedUsers))
	for _, su := range seedUsers {
		existing, err := db.GetUserByEmail(ctx, su.email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			out[su.email] = existing
			continue
		}

		hash, err := auth.HashPassword(su.password)
		if err != nil {
			return nil, err
		}
		user := &models.User{
			Name:         su.name,
			Email:        su.email,
			PasswordHash: hash,
			Role:         su.role,
			IsActive:     true,
		}
		if err := db.CreateUser(ctx, user); err != nil {
			return nil, err
		}
		log.Printf("Created %s account %s", su.role, su.email)
		out[su.email] = user
	}
	return out, nil
}

func ensureProducts(ctx context.Context, db *store.Store, adminID int64) error {
	existing, err := db.GetProducts(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, p := range existing {
		have[p.Name] = true
	}

	for _, sp := range seedProducts {
		if have[sp.Name] {
			continue
		}
		product := sp
		product.CreatedBy = adminID
		if err := db.CreateProduct(ctx, &product); err != nil {
			return err
		}
		log.Printf("Created product %q", product.Name)
	}
	return nil
}

func ensureOrders(ctx context.Context, db *store.Store, owner *models.User) error {
	existing, err := db.GetOrdersByUserID(ctx, owner.ID, 1)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	products, err := db.GetActiveProducts(ctx, 2)
	if err != nil {
		return err
	}
	if len(products) < 2 {
		log.Println("Not enough products to seed an order, skipping")
		return nil
	}

	items := []models.OrderItem{
		{ProductID: products[0].ID, Quantity: 2, UnitPrice: products[0].Price},
		{ProductID: products[1].ID, Quantity: 1, UnitPrice: products[1].Price},
	}
	total := products[0].Price*2 + products[1].Price

	order := &models.Order{
		UserID:        owner.ID,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: "credit_card",
		ShippingAddress: models.ShippingAddress{
			Street:  "123 Main St",
			City:    "Springfield",
			State:   "IL",
			ZipCode: "62701",
			Country: "USA",
		},
		TotalAmount: total,
	}
	if err := db.CreateOrder(ctx, order, items); err != nil {
		return err
	}
	log.Printf("Created demo order %d for %s", order.ID, owner.Email)
	return nil
}
