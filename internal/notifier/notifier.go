// Package notifier delivers the owner-facing order summary through one or more
// independent outbound email channels.
package notifier

import (
	"checkout-service/internal/entity"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Notifier is one outbound channel. Send returns nil only when the provider
// accepted the message.
type Notifier interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Message is the rendered notification handed to every channel.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
	Summary Summary
}

// withRecipients returns a copy addressed to to, or msg unchanged if to is empty.
func (m Message) withRecipients(to []string) Message {
	if len(to) == 0 {
		return m
	}
	m.To = to
	return m
}

// Summary is the structured order content rendered into a Message.
type Summary struct {
	StoreName       string
	CurrencySign    string
	OrderNumber     string
	OrderDate       time.Time
	PaymentMethod   string
	PaymentStatus   string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress entity.Address
	Items           []entity.NamedItem
	Total           decimal.Decimal
}

func (s Summary) Money(d decimal.Decimal) string {
	return s.CurrencySign + d.StringFixed(2)
}

// ShippingLine is the postal address on one line.
func (s Summary) ShippingLine() string {
	a := s.ShippingAddress
	return fmt.Sprintf("%s, %s, %s %s, %s", a.Address, a.City, a.State, a.ZipCode, a.Country)
}

// StatusError reports a provider response outside the 2xx range.
type StatusError struct {
	Channel    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: provider responded %d", e.Channel, e.StatusCode)
	}
	return fmt.Sprintf("%s: provider responded %d: %s", e.Channel, e.StatusCode, e.Body)
}
