package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const NotificationTypeNewOrder = "new_order"

// OwnerNotification is one entry of the owner inbox. IsRead is the only field
// that changes after insert.
type OwnerNotification struct {
	ID            string              `json:"id"`
	Type          string              `json:"type"`
	OrderNumber   string              `json:"order_number"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Details       NotificationDetails `json:"details"`
	IsRead        bool                `json:"is_read"`
	CreatedAt     time.Time           `json:"created_at"`
}

type NotificationDetails struct {
	Items           []NamedItem       `json:"items"`
	ShippingAddress Address           `json:"shipping_address"`
	PaymentMethod   string            `json:"payment_method"`
	PaymentStatus   string            `json:"payment_status"`
	OrderDate       time.Time         `json:"order_date"`
	Delivery        []DeliveryOutcome `json:"delivery"`
}

// NamedItem is a line item enriched with the product display name.
type NamedItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// DeliveryOutcome is the result of one notification channel attempt.
type DeliveryOutcome struct {
	Channel string `json:"channel"`
	Sent    bool   `json:"sent"`
	Error   string `json:"error,omitempty"`
}
