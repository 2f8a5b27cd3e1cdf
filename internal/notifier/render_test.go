package notifier

import (
	"checkout-service/internal/entity"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSummary() Summary {
	return Summary{
		StoreName:     "Storefront",
		CurrencySign:  "₹",
		OrderNumber:   "ORD-01HZX3",
		OrderDate:     time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		PaymentMethod: "upi",
		PaymentStatus: "paid",
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "+91 98765 43210",
		ShippingAddress: entity.Address{
			FirstName: "Asha",
			LastName:  "Rao",
			Address:   "12 MG Road",
			City:      "Bengaluru",
			State:     "KA",
			ZipCode:   "560001",
			Country:   "India",
		},
		Items: []entity.NamedItem{
			{ProductID: "p1", Name: "Linen Shirt", Quantity: 2, Price: decimal.RequireFromString("149.5"), LineTotal: decimal.RequireFromString("299")},
			{ProductID: "p9", Name: entity.UnknownProductName, Quantity: 1, Price: decimal.RequireFromString("199"), LineTotal: decimal.RequireFromString("199")},
		},
		Total: decimal.RequireFromString("498"),
	}
}

func TestRender(t *testing.T) {
	msg, err := Render(testSummary(), []string{"owner@example.com"})
	require.NoError(t, err)

	assert.Equal(t, []string{"owner@example.com"}, msg.To)
	assert.Equal(t, "New order ORD-01HZX3 - Storefront (₹498.00)", msg.Subject)

	assert.Contains(t, msg.Text, "Order Number: ORD-01HZX3")
	assert.Contains(t, msg.Text, "Date: 01 Mar 2026 10:30 UTC")
	assert.Contains(t, msg.Text, "Payment: upi (paid)")
	assert.Contains(t, msg.Text, "- Linen Shirt x2 @ ₹149.50 = ₹299.00")
	assert.Contains(t, msg.Text, "- Unknown Product x1 @ ₹199.00 = ₹199.00")
	assert.Contains(t, msg.Text, "12 MG Road, Bengaluru, KA 560001, India")

	assert.Contains(t, msg.HTML, "<h2>New order ORD-01HZX3</h2>")
	assert.Contains(t, msg.HTML, "<td>Linen Shirt</td>")
	assert.Contains(t, msg.HTML, "<strong>₹498.00</strong>")
	assert.Equal(t, "ORD-01HZX3", msg.Summary.OrderNumber)
}

func TestRender_EscapesHTML(t *testing.T) {
	s := testSummary()
	s.CustomerName = `<script>alert("x")</script>`

	msg, err := Render(s, nil)
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.Text, "<script>")
}

func TestMessageWithRecipients(t *testing.T) {
	msg := Message{To: []string{"a@example.com"}}
	assert.Equal(t, []string{"a@example.com"}, msg.withRecipients(nil).To)
	assert.Equal(t, []string{"b@example.com"}, msg.withRecipients([]string{"b@example.com"}).To)
	assert.Equal(t, []string{"a@example.com"}, msg.To)
}
