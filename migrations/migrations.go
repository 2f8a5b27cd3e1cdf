package migrations

import (
	"database/sql"
	"fmt"
	"time"
)

// The DDL sticks to the subset shared by MySQL 8 and SQLite so the same schema
// backs production and the in-memory test store.

const productsTable = `
	CREATE TABLE IF NOT EXISTS products (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		price DECIMAL(12,2) NOT NULL
	);
`

const ordersTable = `
	CREATE TABLE IF NOT EXISTS orders (
		id VARCHAR(36) PRIMARY KEY,
		user_id VARCHAR(36) NULL,
		order_number VARCHAR(64) NOT NULL UNIQUE,
		total_amount DECIMAL(12,2) NOT NULL,
		status VARCHAR(20) NOT NULL,
		payment_status VARCHAR(20) NOT NULL,
		payment_method VARCHAR(32) NOT NULL,
		shipping_address TEXT NOT NULL,
		billing_address TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
`

const orderItemsTable = `
	CREATE TABLE IF NOT EXISTS order_items (
		id VARCHAR(36) PRIMARY KEY,
		order_id VARCHAR(36) NOT NULL,
		line_no INT NOT NULL,
		product_id VARCHAR(64) NOT NULL,
		quantity INT NOT NULL CHECK (quantity > 0),
		price DECIMAL(12,2) NOT NULL CHECK (price >= 0),
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	);
`

const ownerNotificationsTable = `
	CREATE TABLE IF NOT EXISTS owner_notifications (
		id VARCHAR(36) PRIMARY KEY,
		type VARCHAR(32) NOT NULL,
		order_number VARCHAR(64) NOT NULL,
		customer_name VARCHAR(255) NOT NULL,
		customer_email VARCHAR(255) NOT NULL,
		total_amount DECIMAL(12,2) NOT NULL,
		details TEXT NOT NULL,
		is_read BOOLEAN NOT NULL,
		created_at DATETIME NOT NULL
	);
`

// AutoMigrateProducts creates the products table if it does not exist.
func AutoMigrateProducts(retries int, dbs ...*sql.DB) error {
	return migrate("products", productsTable, retries, dbs...)
}

// AutoMigrateOrders creates the orders table if it does not exist.
func AutoMigrateOrders(retries int, dbs ...*sql.DB) error {
	return migrate("orders", ordersTable, retries, dbs...)
}

// AutoMigrateOrderItems creates the order_items table if it does not exist.
func AutoMigrateOrderItems(retries int, dbs ...*sql.DB) error {
	return migrate("order_items", orderItemsTable, retries, dbs...)
}

// AutoMigrateOwnerNotifications creates the owner_notifications table if it does not exist.
func AutoMigrateOwnerNotifications(retries int, dbs ...*sql.DB) error {
	return migrate("owner_notifications", ownerNotificationsTable, retries, dbs...)
}

// AutoMigrate runs every table migration in dependency order.
func AutoMigrate(retries int, dbs ...*sql.DB) error {
	steps := []func(int, ...*sql.DB) error{
		AutoMigrateProducts,
		AutoMigrateOrders,
		AutoMigrateOrderItems,
		AutoMigrateOwnerNotifications,
	}
	for _, step := range steps {
		if err := step(retries, dbs...); err != nil {
			return err
		}
	}
	return nil
}

func migrate(table, query string, retries int, dbs ...*sql.DB) error {
	for _, db := range dbs {
		_, err := db.Exec(query)
		for i := 0; err != nil && i < retries; i++ {
			time.Sleep(1 * time.Second)
			_, err = db.Exec(query)
		}
		if err != nil {
			return fmt.Errorf("migrate %s: %w", table, err)
		}
	}
	return nil
}
