package notifier

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"text/template"
)

const dateLayout = "02 Jan 2006 15:04 MST"

var textTmpl = template.Must(template.New("text").Parse(`NEW ORDER RECEIVED

Order Number: {{.OrderNumber}}
Date: {{.OrderDate.Format "` + dateLayout + `"}}
Payment: {{.PaymentMethod}} ({{.PaymentStatus}})
Total: {{.Money .Total}}

Customer: {{.CustomerName}}
Email: {{.CustomerEmail}}
Phone: {{.CustomerPhone}}

Items:
{{range .Items}}- {{.Name}} x{{.Quantity}} @ {{$.Money .Price}} = {{$.Money .LineTotal}}
{{end}}
Shipping Address:
{{.ShippingAddress.FirstName}} {{.ShippingAddress.LastName}}
{{.ShippingLine}}
`))

var htmlTmpl = htmltemplate.Must(htmltemplate.New("html").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.StoreName}} - Order {{.OrderNumber}}</title></head>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h1>{{.StoreName}}</h1>
  <h2>New order {{.OrderNumber}}</h2>
  <p>
    <strong>Date:</strong> {{.OrderDate.Format "` + dateLayout + `"}}<br>
    <strong>Payment:</strong> {{.PaymentMethod}} ({{.PaymentStatus}})
  </p>
  <h3>Customer</h3>
  <p>
    {{.CustomerName}}<br>
    <a href="mailto:{{.CustomerEmail}}">{{.CustomerEmail}}</a><br>
    {{.CustomerPhone}}
  </p>
  <h3>Shipping Address</h3>
  <p>
    {{.ShippingAddress.FirstName}} {{.ShippingAddress.LastName}}<br>
    {{.ShippingAddress.Address}}<br>
    {{.ShippingAddress.City}}, {{.ShippingAddress.State}} {{.ShippingAddress.ZipCode}}<br>
    {{.ShippingAddress.Country}}
  </p>
  <table style="width: 100%; border-collapse: collapse;">
    <thead>
      <tr><th align="left">Product</th><th>Qty</th><th align="right">Price</th><th align="right">Total</th></tr>
    </thead>
    <tbody>
      {{range .Items}}<tr><td>{{.Name}}</td><td align="center">{{.Quantity}}</td><td align="right">{{$.Money .Price}}</td><td align="right">{{$.Money .LineTotal}}</td></tr>
      {{end}}
    </tbody>
    <tfoot>
      <tr><td colspan="3" align="right"><strong>Total</strong></td><td align="right"><strong>{{.Money .Total}}</strong></td></tr>
    </tfoot>
  </table>
</body>
</html>
`))

// Render builds the message sent to every channel.
func Render(s Summary, recipients []string) (Message, error) {
	var text, html bytes.Buffer
	if err := textTmpl.Execute(&text, s); err != nil {
		return Message{}, fmt.Errorf("render text body: %w", err)
	}
	if err := htmlTmpl.Execute(&html, s); err != nil {
		return Message{}, fmt.Errorf("render html body: %w", err)
	}

	return Message{
		To:      recipients,
		Subject: fmt.Sprintf("New order %s - %s (%s)", s.OrderNumber, s.StoreName, s.Money(s.Total)),
		Text:    text.String(),
		HTML:    html.String(),
		Summary: s,
	}, nil
}
