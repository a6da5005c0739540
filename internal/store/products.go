package store

import (
	"context"
	"database/sql"
	"fmt"

	"support-service/internal/models"

	"github.com/jmoiron/sqlx"
)

// CreateProduct inserts a new catalog item
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, description, price, stock, category, is_active, images, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	return s.db.GetContext(ctx, product, query,
		product.Name, product.Description, product.Price, product.Stock,
		product.Category, product.IsActive, product.Images, product.CreatedBy)
}

// GetProductByID retrieves a catalog item by ID
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts retrieves all catalog items, newest first
func (s *Store) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products, "SELECT * FROM products ORDER BY created_at DESC")
	return products, err
}

// GetActiveProducts retrieves active catalog items. A limit of 0 means no
// limit. The small-limit form feeds the chat context sample, which is an
// arbitrary prefix, not a relevance ranking.
func (s *Store) GetActiveProducts(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	query := "SELECT * FROM products WHERE is_active ORDER BY id"
	if limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limit)
	}
	err := s.db.SelectContext(ctx, &products, query)
	return products, err
}

// GetProductsByIDs retrieves multiple catalog items by IDs
func (s *Store) GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM products WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var products []models.Product
	err = s.db.SelectContext(ctx, &products, query, args...)
	return products, err
}

// UpdateProduct overwrites a catalog item and returns the updated row
func (s *Store) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4,
		    category = $5, is_active = $6, images = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING created_by, created_at, updated_at`

	err := s.db.GetContext(ctx, product, query,
		product.Name, product.Description, product.Price, product.Stock,
		product.Category, product.IsActive, product.Images, product.ID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("product not found: %d", product.ID)
	}
	return err
}

// DeleteProduct removes a catalog item
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("product not found: %d", id)
	}
	return nil
}
