package store

import (
	"context"
	"database/sql"
	"fmt"

	"support-service/internal/models"

	"github.com/jmoiron/sqlx"
)

// CreateOrder inserts an order with its lines in one transaction. Stock
// is decremented per line; insufficient stock or an inactive product
// aborts the whole order.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, item := range items {
		res, err := tx.ExecContext(ctx,
			"UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2 AND is_active AND stock >= $1",
			item.Quantity, item.ProductID)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("insufficient stock for product %d", item.ProductID)
		}
	}

	query := `
		INSERT INTO orders (user_id, status, payment_status, payment_method, shipping_address, notes, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	if err := tx.GetContext(ctx, order, query,
		order.UserID, order.Status, order.PaymentStatus, order.PaymentMethod,
		order.ShippingAddress, order.Notes, order.TotalAmount); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i := range items {
		items[i].OrderID = order.ID
		if err := tx.GetContext(ctx, &items[i].ID,
			"INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4) RETURNING id",
			items[i].OrderID, items[i].ProductID, items[i].Quantity, items[i].UnitPrice); err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	return tx.Commit()
}

// GetOrdersByUserID retrieves a user's orders with joined lines, newest
// first. A limit of 0 means no limit.
func (s *Store) GetOrdersByUserID(ctx context.Context, userID int64, limit int) ([]models.OrderWithItems, error) {
	var orders []models.Order
	query := "SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC"
	if limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limit)
	}
	if err := s.db.SelectContext(ctx, &orders, query, userID); err != nil {
		return nil, err
	}

	return s.attachItems(ctx, orders)
}

// GetOrderForUser retrieves one order scoped to its owner
func (s *Store) GetOrderForUser(ctx context.Context, orderID, userID int64) (*models.OrderWithItems, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order,
		"SELECT * FROM orders WHERE id = $1 AND user_id = $2", orderID, userID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order not found: %d", orderID)
	}
	if err != nil {
		return nil, err
	}

	withItems, err := s.attachItems(ctx, []models.Order{order})
	if err != nil {
		return nil, err
	}
	return &withItems[0], nil
}

// GetOrdersWithOwners retrieves orders with their owners joined, newest
// first. A limit of 0 means no limit.
func (s *Store) GetOrdersWithOwners(ctx context.Context, limit int) ([]models.OrderWithUser, error) {
	var orders []models.OrderWithUser
	query := `
		SELECT o.*, u.name AS user_name, u.email AS user_email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC`
	if limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limit)
	}
	err := s.db.SelectContext(ctx, &orders, query)
	return orders, err
}

// GetOrderWithOwner retrieves one order with its owner joined
func (s *Store) GetOrderWithOwner(ctx context.Context, orderID int64) (*models.OrderWithUser, error) {
	var order models.OrderWithUser
	err := s.db.GetContext(ctx, &order, `
		SELECT o.*, u.name AS user_name, u.email AS user_email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1`, orderID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order not found: %d", orderID)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderItemsDetailed retrieves the lines of the given orders joined
// with their product name and current catalog price, keyed by order ID.
func (s *Store) GetOrderItemsDetailed(ctx context.Context, orderIDs []int64) (map[int64][]models.OrderItemDetail, error) {
	result := make(map[int64][]models.OrderItemDetail, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`
		SELECT oi.order_id, oi.product_id, p.name AS product_name,
		       oi.quantity, oi.unit_price, p.price AS list_price
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id IN (?)
		ORDER BY oi.id`, orderIDs)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var rows []struct {
		OrderID int64 `db:"order_id"`
		models.OrderItemDetail
	}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.OrderID] = append(result[row.OrderID], row.OrderItemDetail)
	}
	return result, nil
}

// UpdateOrderStatus overwrites an order's status. No transition check is
// applied; forward-only flow is an admin UI concern. Returns the previous
// status and the updated order.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (string, *models.Order, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", nil, err
	}
	defer tx.Rollback()

	var oldStatus string
	err = tx.GetContext(ctx, &oldStatus, "SELECT status FROM orders WHERE id = $1 FOR UPDATE", orderID)
	if err == sql.ErrNoRows {
		return "", nil, fmt.Errorf("order not found: %d", orderID)
	}
	if err != nil {
		return "", nil, err
	}

	var order models.Order
	if err := tx.GetContext(ctx, &order,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING *",
		status, orderID); err != nil {
		return "", nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", nil, err
	}
	return oldStatus, &order, nil
}

func (s *Store) attachItems(ctx context.Context, orders []models.Order) ([]models.OrderWithItems, error) {
	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	itemsByOrder, err := s.GetOrderItemsDetailed(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]models.OrderWithItems, len(orders))
	for i, o := range orders {
		result[i] = models.OrderWithItems{Order: o, Items: itemsByOrder[o.ID]}
	}
	return result, nil
}
