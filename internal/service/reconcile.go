package service

import (
	"checkout-service/internal/entity"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MismatchTolerance is how far a submitted total may drift from the computed
// one before a mismatch is reported.
var MismatchTolerance = decimal.New(1, -2)

var ErrInvalidItem = errors.New("invalid order item")

// ReconcileTotal computes Σ price × quantity. The computed total is always the
// one to store; mismatch reports whether the submitted total was off by more
// than MismatchTolerance.
func ReconcileTotal(items []entity.CheckoutItem, submitted decimal.Decimal) (total decimal.Decimal, mismatch bool) {
	total = decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, total.Sub(submitted).Abs().GreaterThan(MismatchTolerance)
}

// ValidateItems rejects line items that cannot be stored. An empty list is valid.
func ValidateItems(items []entity.CheckoutItem) error {
	for i, item := range items {
		if strings.TrimSpace(item.ProductID) == "" {
			return fmt.Errorf("%w: item %d: product_id is required", ErrInvalidItem, i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d: quantity must be positive, got %d", ErrInvalidItem, i, item.Quantity)
		}
		if item.Price.IsNegative() {
			return fmt.Errorf("%w: item %d: price cannot be negative, got %s", ErrInvalidItem, i, item.Price)
		}
	}
	return nil
}
