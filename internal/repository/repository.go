package repository

import (
	"checkout-service/internal/entity"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("not found")

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db}
}

func (r *OrderRepository) execTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// CreateOrder writes the order row and all of its line items in one transaction.
// Either both land or neither does. order.ID and items' IDs must already be set.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	shipping, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("encode shipping address: %w", err)
	}
	billing, err := json.Marshal(order.BillingAddress)
	if err != nil {
		return fmt.Errorf("encode billing address: %w", err)
	}

	return r.execTx(ctx, func(tx *sql.Tx) error {
		orderQuery := `INSERT INTO orders (id, user_id, order_number, total_amount, status, payment_status, payment_method, shipping_address, billing_address, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := tx.ExecContext(ctx, orderQuery, order.ID, order.UserID, order.OrderNumber, order.TotalAmount, order.Status, order.PaymentStatus, order.PaymentMethod, string(shipping), string(billing), order.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		if len(order.Items) == 0 {
			return nil
		}

		// Insert line items with batch
		itemQuery := `INSERT INTO order_items (id, order_id, line_no, product_id, quantity, price) VALUES `
		placeholders := make([]string, 0, len(order.Items))
		values := make([]interface{}, 0, len(order.Items)*6)
		for i, item := range order.Items {
			placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?)")
			values = append(values, item.ID, order.ID, i, item.ProductID, item.Quantity, item.Price)
		}

		_, err = tx.ExecContext(ctx, itemQuery+strings.Join(placeholders, ", "), values...)
		if err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
		return nil
	})
}

func (r *OrderRepository) GetOrderByNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	orderQuery := `SELECT id, user_id, order_number, total_amount, status, payment_status, payment_method, shipping_address, billing_address, created_at FROM orders WHERE order_number = ?`
	itemQuery := `SELECT id, order_id, product_id, quantity, price FROM order_items WHERE order_id = ? ORDER BY line_no`

	var (
		order    entity.Order
		userID   sql.NullString
		shipping string
		billing  string
	)
	err := r.db.QueryRowContext(ctx, orderQuery, orderNumber).Scan(&order.ID, &userID, &order.OrderNumber, &order.TotalAmount, &order.Status, &order.PaymentStatus, &order.PaymentMethod, &shipping, &billing, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if userID.Valid {
		order.UserID = &userID.String
	}
	if err := json.Unmarshal([]byte(shipping), &order.ShippingAddress); err != nil {
		return nil, fmt.Errorf("decode shipping address: %w", err)
	}
	if err := json.Unmarshal([]byte(billing), &order.BillingAddress); err != nil {
		return nil, fmt.Errorf("decode billing address: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, itemQuery, order.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	order.Items = []entity.OrderItem{}
	for rows.Next() {
		item := entity.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}

	return &order, rows.Err()
}
