package store

import (
	"context"

	"support-service/internal/models"
)

// GetDashboardCounts retrieves the collection sizes for the admin dashboard
func (s *Store) GetDashboardCounts(ctx context.Context) (*models.DashboardCounts, error) {
	var counts models.DashboardCounts
	err := s.db.GetContext(ctx, &counts, `
		SELECT
			(SELECT COUNT(*) FROM users)    AS users,
			(SELECT COUNT(*) FROM products) AS products,
			(SELECT COUNT(*) FROM orders)   AS orders,
			(SELECT COUNT(*) FROM chats)    AS chats`)
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

// GetCategoryStats retrieves product count and total stock per category,
// most populous category first
func (s *Store) GetCategoryStats(ctx context.Context) ([]models.CategoryStat, error) {
	var stats []models.CategoryStat
	err := s.db.SelectContext(ctx, &stats, `
		SELECT category, COUNT(*) AS count, COALESCE(SUM(stock), 0) AS total_stock
		FROM products
		GROUP BY category
		ORDER BY count DESC`)
	return stats, err
}
