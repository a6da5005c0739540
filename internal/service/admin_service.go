package service

import (
	"context"
	"fmt"

	"support-service/internal/models"
	"support-service/internal/store"
	"support-service/internal/util"

	"go.uber.org/zap"
)

const dashboardRecentCount = 5

// AdminService assembles the admin order views and the dashboard summary
type AdminService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(store *store.Store) *AdminService {
	return &AdminService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// ListOrders returns all orders for the admin view, newest first
func (s *AdminService) ListOrders(ctx context.Context) ([]models.AdminOrder, error) {
	return s.listOrders(ctx, 0)
}

// GetOrder returns one order for the admin view
func (s *AdminService) GetOrder(ctx context.Context, orderID int64) (*models.AdminOrder, error) {
	order, err := s.store.GetOrderWithOwner(ctx, orderID)
	if err != nil {
		return nil, err
	}

	itemsByOrder, err := s.store.GetOrderItemsDetailed(ctx, []int64{orderID})
	if err != nil {
		return nil, err
	}

	result := models.AdminOrder{
		OrderWithUser: *order,
		Items:         repriceItems(itemsByOrder[orderID]),
	}
	return &result, nil
}

// Stats assembles the dashboard summary
func (s *AdminService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	ctx, span := util.StartSpan(ctx, "AdminService.Stats")
	defer span.End()

	counts, err := s.store.GetDashboardCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count collections: %w", err)
	}

	recentOrders, err := s.listOrders(ctx, dashboardRecentCount)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}

	productStats, err := s.store.GetCategoryStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load category stats: %w", err)
	}

	recentChats, err := s.store.GetChats(ctx, dashboardRecentCount)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent chats: %w", err)
	}

	return &models.DashboardStats{
		Counts:       *counts,
		RecentOrders: recentOrders,
		ProductStats: productStats,
		RecentChats:  recentChats,
	}, nil
}

func (s *AdminService) listOrders(ctx context.Context, limit int) ([]models.AdminOrder, error) {
	orders, err := s.store.GetOrdersWithOwners(ctx, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	itemsByOrder, err := s.store.GetOrderItemsDetailed(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]models.AdminOrder, len(orders))
	for i, o := range orders {
		result[i] = models.AdminOrder{
			OrderWithUser: o,
			Items:         repriceItems(itemsByOrder[o.ID]),
		}
	}
	return result, nil
}

// repriceItems rebuilds order lines at the current catalog price. Admin
// list views intentionally show live prices, not the order-time snapshot.
func repriceItems(items []models.OrderItemDetail) []models.AdminOrderItem {
	result := make([]models.AdminOrderItem, len(items))
	for i, item := range items {
		result[i] = models.AdminOrderItem{
			ProductID: item.ProductID,
			Product:   item.ProductName,
			Quantity:  item.Quantity,
			Price:     item.ListPrice,
			Total:     item.ListPrice * float64(item.Quantity),
		}
	}
	return result
}
