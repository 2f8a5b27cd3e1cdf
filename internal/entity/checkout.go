package entity

import "github.com/shopspring/decimal"

// CheckoutRequest is the body of a checkout submission. TotalAmount is advisory;
// the stored total is always recomputed from Items.
type CheckoutRequest struct {
	Items           []CheckoutItem  `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `json:"payment_status"`
	ShippingAddress Address         `json:"shipping_address"`
	BillingAddress  *Address        `json:"billing_address"`
	UserID          *string         `json:"user_id"`
	GuestEmail      string          `json:"guest_email"`
	GuestName       string          `json:"guest_name"`
}

type CheckoutItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type CheckoutResult struct {
	Success         bool              `json:"success"`
	OrderID         string            `json:"order_id"`
	OrderNumber     string            `json:"order_number"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	PaymentMethod   string            `json:"payment_method"`
	CustomerName    string            `json:"customer_name"`
	EmailSent       bool              `json:"email_sent"`
	ProcessedUserID *string           `json:"processed_user_id"`
	Notifications   []DeliveryOutcome `json:"notifications"`
}
