package repository

import (
	"checkout-service/internal/entity"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

const defaultListLimit = 50

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db}
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, n *entity.OwnerNotification) error {
	details, err := json.Marshal(n.Details)
	if err != nil {
		return fmt.Errorf("encode notification details: %w", err)
	}

	query := `INSERT INTO owner_notifications (id, type, order_number, customer_name, customer_email, total_amount, details, is_read, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, n.ID, n.Type, n.OrderNumber, n.CustomerName, n.CustomerEmail, n.TotalAmount, string(details), n.IsRead, n.CreatedAt)
	return err
}

// ListNotifications returns the newest entries first.
func (r *NotificationRepository) ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]entity.OwnerNotification, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT id, type, order_number, customer_name, customer_email, total_amount, details, is_read, created_at FROM owner_notifications`
	args := []interface{}{}
	if unreadOnly {
		query += ` WHERE is_read = ?`
		args = append(args, false)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []entity.OwnerNotification{}
	for rows.Next() {
		var (
			n       entity.OwnerNotification
			details string
		)
		if err := rows.Scan(&n.ID, &n.Type, &n.OrderNumber, &n.CustomerName, &n.CustomerEmail, &n.TotalAmount, &details, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(details), &n.Details); err != nil {
			return nil, fmt.Errorf("decode notification %s details: %w", n.ID, err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// SetRead flips the read flag. It is the only mutation a ledger entry allows.
func (r *NotificationRepository) SetRead(ctx context.Context, id string, read bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE owner_notifications SET is_read = ? WHERE id = ?`, read, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
