package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// resendEmails is the slice of the Resend SDK this channel uses.
type resendEmails interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Resend sends through the Resend API with one API key. Configure two of them
// with different keys for a redundant pair.
type Resend struct {
	name   string
	from   string
	to     []string
	emails resendEmails
}

func NewResend(name, apiKey, from string, to []string) *Resend {
	return newResend(name, from, to, resend.NewClient(apiKey).Emails)
}

func newResend(name, from string, to []string, emails resendEmails) *Resend {
	return &Resend{name: name, from: from, to: to, emails: emails}
}

func (r *Resend) Name() string { return r.name }

func (r *Resend) Send(ctx context.Context, msg Message) error {
	msg = msg.withRecipients(r.to)
	if len(msg.To) == 0 {
		return fmt.Errorf("%s: %w", r.name, ErrNoRecipients)
	}

	sent, err := r.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    r.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", r.name, err)
	}
	if sent == nil || sent.Id == "" {
		return fmt.Errorf("%s: %w", r.name, errNotAccepted)
	}

	logger.Debug().Str("channel", r.name).Str("email_id", sent.Id).Msg("Resend accepted message")
	return nil
}

var (
	ErrNoRecipients = errors.New("no recipients configured")
	errNotAccepted  = errors.New("provider returned no message id")
)
