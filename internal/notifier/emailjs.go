package notifier

import (
	"bytes"
	"checkout-service/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// EmailJS posts template parameters to the EmailJS REST API, which renders
// and sends the email on its side.
type EmailJS struct {
	cfg    config.EmailJSConfig
	to     []string
	client *http.Client
}

func NewEmailJS(cfg config.EmailJSConfig, to []string, client *http.Client) *EmailJS {
	if client == nil {
		client = http.DefaultClient
	}
	return &EmailJS{cfg: cfg, to: to, client: client}
}

func (e *EmailJS) Name() string { return "emailjs" }

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (e *EmailJS) Send(ctx context.Context, msg Message) error {
	msg = msg.withRecipients(e.to)
	s := msg.Summary

	items := make([]string, len(s.Items))
	for i, item := range s.Items {
		items[i] = fmt.Sprintf("%s - Qty: %d - %s = %s", item.Name, item.Quantity, s.Money(item.Price), s.Money(item.LineTotal))
	}

	body, err := json.Marshal(emailJSRequest{
		ServiceID:   e.cfg.ServiceID,
		TemplateID:  e.cfg.TemplateID,
		UserID:      e.cfg.PublicKey,
		AccessToken: e.cfg.PrivateKey,
		TemplateParams: map[string]string{
			"to_email":         strings.Join(msg.To, ", "),
			"subject":          msg.Subject,
			"order_number":     s.OrderNumber,
			"total_amount":     s.Total.StringFixed(2),
			"customer_name":    s.CustomerName,
			"customer_email":   s.CustomerEmail,
			"customer_phone":   s.CustomerPhone,
			"shipping_address": s.ShippingLine(),
			"order_items":      strings.Join(items, "\n"),
			"order_date":       s.OrderDate.Format(dateLayout),
			"payment_method":   s.PaymentMethod,
			"message":          msg.Text,
			"bill_html":        msg.HTML,
		},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", e.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Channel: e.Name(), StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}
	return nil
}
