package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Webhook posts the rendered message as JSON to a relay that forwards it by email.
type Webhook struct {
	url    string
	to     []string
	client *http.Client
}

func NewWebhook(url string, to []string, client *http.Client) *Webhook {
	if client == nil {
		client = http.DefaultClient
	}
	return &Webhook{url: url, to: to, client: client}
}

func (w *Webhook) Name() string { return "webhook" }

type webhookPayload struct {
	To          []string `json:"to"`
	Subject     string   `json:"subject"`
	Text        string   `json:"text"`
	HTML        string   `json:"html"`
	OrderNumber string   `json:"order_number"`
	TotalAmount string   `json:"total_amount"`
}

func (w *Webhook) Send(ctx context.Context, msg Message) error {
	msg = msg.withRecipients(w.to)

	body, err := json.Marshal(webhookPayload{
		To:          msg.To,
		Subject:     msg.Subject,
		Text:        msg.Text,
		HTML:        msg.HTML,
		OrderNumber: msg.Summary.OrderNumber,
		TotalAmount: msg.Summary.Total.StringFixed(2),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", w.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Channel: w.Name(), StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}
	return nil
}
