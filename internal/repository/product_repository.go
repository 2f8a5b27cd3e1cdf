package repository

import (
	"checkout-service/internal/entity"
	"context"
	"database/sql"
	"strings"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db}
}

// GetProductNames returns display names keyed by product id. Ids without a
// matching row are simply absent from the map.
func (r *ProductRepository) GetProductNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	query := `SELECT id, name FROM products WHERE id IN (` + strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ") + `)`
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}

	return names, rows.Err()
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *entity.Product) error {
	query := `INSERT INTO products (id, name, price) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, product.ID, product.Name, product.Price)
	return err
}
