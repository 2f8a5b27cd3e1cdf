package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// totals and prices go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"

	DefaultPaymentMethod = "upi"
)

type Order struct {
	ID              string          `json:"id"`
	UserID          *string         `json:"user_id"`
	OrderNumber     string          `json:"order_number"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"payment_status"`
	PaymentMethod   string          `json:"payment_method"`
	ShippingAddress Address         `json:"shipping_address"`
	BillingAddress  Address         `json:"billing_address"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}

// OrderItem is a line item. Price is the unit price captured at checkout.
type OrderItem struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Address is the shipping or billing contact record in the storefront's
// camelCase wire shape. OriginalIdentityToken keeps the caller's identity token
// verbatim for support lookups on guest orders.
type Address struct {
	FirstName             string `json:"firstName"`
	LastName              string `json:"lastName"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	Address               string `json:"address"`
	City                  string `json:"city"`
	State                 string `json:"state"`
	ZipCode               string `json:"zipCode"`
	Country               string `json:"country"`
	OriginalIdentityToken string `json:"original_identity_token,omitempty"`
}

/*
Mysql Table

CREATE TABLE orders (
	id VARCHAR(36) PRIMARY KEY,
	user_id VARCHAR(36) NULL,
	order_number VARCHAR(64) NOT NULL UNIQUE,
	...
);

CREATE TABLE order_items (
	id VARCHAR(36) PRIMARY KEY,
	order_id VARCHAR(36) NOT NULL REFERENCES orders(id),
	product_id VARCHAR(64) NOT NULL,
	quantity INT NOT NULL CHECK (quantity > 0),
	price DECIMAL(12,2) NOT NULL
);

*/
