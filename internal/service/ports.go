package service

import (
	"checkout-service/internal/entity"
	"checkout-service/internal/notifier"
	"context"

	"github.com/segmentio/kafka-go"
)

type OrderStore interface {
	CreateOrder(ctx context.Context, order *entity.Order) error
	GetOrderByNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
}

type ProductNameReader interface {
	GetProductNames(ctx context.Context, ids []string) (map[string]string, error)
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, n *entity.OwnerNotification) error
	ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]entity.OwnerNotification, error)
	SetRead(ctx context.Context, id string, read bool) error
}

type NameCache interface {
	GetNames(ctx context.Context, ids []string) (map[string]string, error)
	SetNames(ctx context.Context, names map[string]string) error
}

type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Dispatcher interface {
	Dispatch(ctx context.Context, msg notifier.Message) notifier.Result
}
