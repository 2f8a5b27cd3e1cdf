package repository

import (
	"checkout-service/internal/entity"
	"checkout-service/migrations"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	// every connection to :memory: is its own database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.AutoMigrate(0, db))
	return db
}

func testOrder(number string, items ...entity.OrderItem) *entity.Order {
	order := &entity.Order{
		ID:            uuid.NewString(),
		OrderNumber:   number,
		TotalAmount:   decimal.RequireFromString("498.00"),
		Status:        entity.OrderStatusConfirmed,
		PaymentStatus: entity.PaymentStatusPaid,
		PaymentMethod: "upi",
		ShippingAddress: entity.Address{
			FirstName:             "Asha",
			LastName:              "Rao",
			Email:                 "asha@example.com",
			City:                  "Bengaluru",
			OriginalIdentityToken: "user_2xKjA9dLqP0sV7",
		},
		BillingAddress: entity.Address{FirstName: "Asha", City: "Bengaluru"},
		CreatedAt:      time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
	}
	for _, it := range items {
		it.ID = uuid.NewString()
		it.OrderID = order.ID
		order.Items = append(order.Items, it)
	}
	return order
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestOrderRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := testOrder("ORD-1",
		entity.OrderItem{ProductID: "p2", Quantity: 1, Price: decimal.RequireFromString("199.00")},
		entity.OrderItem{ProductID: "p1", Quantity: 2, Price: decimal.RequireFromString("149.50")},
	)
	require.NoError(t, repo.CreateOrder(ctx, order))

	got, err := repo.GetOrderByNumber(ctx, "ORD-1")
	require.NoError(t, err)

	assert.Equal(t, order.ID, got.ID)
	assert.Nil(t, got.UserID)
	assert.True(t, order.TotalAmount.Equal(got.TotalAmount))
	assert.Equal(t, order.ShippingAddress, got.ShippingAddress)
	assert.Equal(t, order.BillingAddress, got.BillingAddress)
	assert.True(t, order.CreatedAt.Equal(got.CreatedAt))

	require.Len(t, got.Items, 2)
	assert.Equal(t, "p2", got.Items[0].ProductID)
	assert.Equal(t, "p1", got.Items[1].ProductID)
	assert.Equal(t, 2, got.Items[1].Quantity)
	assert.True(t, decimal.RequireFromString("149.50").Equal(got.Items[1].Price))
	assert.Equal(t, order.ID, got.Items[1].OrderID)
}

func TestOrderRepository_UserIDAndEmptyItems(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := testOrder("ORD-2")
	userID := "3f2504e0-4f89-11d3-9a0c-0305e82c3301"
	order.UserID = &userID
	require.NoError(t, repo.CreateOrder(ctx, order))

	got, err := repo.GetOrderByNumber(ctx, "ORD-2")
	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	assert.Equal(t, userID, *got.UserID)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}

func TestOrderRepository_NoOrphanOnItemFailure(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	order := testOrder("ORD-3",
		entity.OrderItem{ProductID: "p1", Quantity: 1, Price: decimal.RequireFromString("10.00")},
		entity.OrderItem{ProductID: "p2", Quantity: 0, Price: decimal.RequireFromString("10.00")},
	)
	err := repo.CreateOrder(context.Background(), order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert order items")

	assert.Equal(t, 0, countRows(t, db, "orders"))
	assert.Equal(t, 0, countRows(t, db, "order_items"))

	_, err = repo.GetOrderByNumber(context.Background(), "ORD-3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderRepository_DuplicateOrderNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateOrder(ctx, testOrder("ORD-4")))
	err := repo.CreateOrder(ctx, testOrder("ORD-4"))
	require.Error(t, err)
	assert.Equal(t, 1, countRows(t, db, "orders"))
}

func TestOrderRepository_NotFound(t *testing.T) {
	repo := NewOrderRepository(newTestDB(t))
	_, err := repo.GetOrderByNumber(context.Background(), "ORD-MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductRepository_GetProductNames(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateProduct(ctx, &entity.Product{ID: "p1", Name: "Linen Shirt", Price: decimal.RequireFromString("149.50")}))
	require.NoError(t, repo.CreateProduct(ctx, &entity.Product{ID: "p2", Name: "Canvas Tote", Price: decimal.RequireFromString("199.00")}))

	names, err := repo.GetProductNames(ctx, []string{"p1", "p2", "ghost"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"p1": "Linen Shirt", "p2": "Canvas Tote"}, names)

	names, err = repo.GetProductNames(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func testNotification(id string, created time.Time) *entity.OwnerNotification {
	return &entity.OwnerNotification{
		ID:            id,
		Type:          entity.NotificationTypeNewOrder,
		OrderNumber:   "ORD-" + id,
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.com",
		TotalAmount:   decimal.RequireFromString("498.00"),
		Details: entity.NotificationDetails{
			Items: []entity.NamedItem{
				{ProductID: "p1", Name: entity.UnknownProductName, Quantity: 2, Price: decimal.RequireFromString("149.50"), LineTotal: decimal.RequireFromString("299.00")},
			},
			PaymentMethod: "upi",
			PaymentStatus: "paid",
			OrderDate:     created,
			Delivery: []entity.DeliveryOutcome{
				{Channel: "emailjs", Sent: false, Error: "emailjs: provider responded 401"},
			},
		},
		CreatedAt: created,
	}
}

func TestNotificationRepository_Ledger(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateNotification(ctx, testNotification("n1", base)))
	require.NoError(t, repo.CreateNotification(ctx, testNotification("n2", base.Add(time.Minute))))
	require.NoError(t, repo.CreateNotification(ctx, testNotification("n3", base.Add(2*time.Minute))))

	all, err := repo.ListNotifications(ctx, false, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "n3", all[0].ID)
	assert.Equal(t, "n1", all[2].ID)
	assert.False(t, all[0].IsRead)
	assert.Equal(t, entity.UnknownProductName, all[0].Details.Items[0].Name)
	require.Len(t, all[0].Details.Delivery, 1)
	assert.Equal(t, "emailjs", all[0].Details.Delivery[0].Channel)

	require.NoError(t, repo.SetRead(ctx, "n3", true))

	unread, err := repo.ListNotifications(ctx, true, 0)
	require.NoError(t, err)
	require.Len(t, unread, 2)
	assert.Equal(t, "n2", unread[0].ID)

	limited, err := repo.ListNotifications(ctx, false, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.True(t, limited[0].IsRead)

	require.NoError(t, repo.SetRead(ctx, "n3", false))
	unread, err = repo.ListNotifications(ctx, true, 0)
	require.NoError(t, err)
	assert.Len(t, unread, 3)
}

func TestNotificationRepository_SetReadNotFound(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	assert.ErrorIs(t, repo.SetRead(context.Background(), "missing", true), ErrNotFound)
}

func TestNotificationRepository_EmptyList(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	list, err := repo.ListNotifications(context.Background(), true, 10)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
