package notifier

import (
	"checkout-service/internal/config"
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTP submits the message to an authenticated SMTP relay with a plaintext
// body and an HTML alternative.
type SMTP struct {
	cfg config.SMTPConfig
	to  []string
}

func NewSMTP(cfg config.SMTPConfig, to []string) *SMTP {
	return &SMTP{cfg: cfg, to: to}
}

func (s *SMTP) Name() string { return "smtp" }

func (s *SMTP) Send(ctx context.Context, msg Message) error {
	msg = msg.withRecipients(s.to)
	if len(msg.To) == 0 {
		return fmt.Errorf("%s: %w", s.Name(), ErrNoRecipients)
	}

	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return fmt.Errorf("%s: from address: %w", s.Name(), err)
	}
	if err := m.To(msg.To...); err != nil {
		return fmt.Errorf("%s: recipients: %w", s.Name(), err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("%s: client: %w", s.Name(), err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("%s: %w", s.Name(), err)
	}
	return nil
}
