package notifier

import (
	"checkout-service/internal/config"
	"net/http"
)

// FromConfig assembles the enabled channels in a fixed order: emailjs, resend,
// resend-secondary, smtp, webhook. A channel is enabled when its credentials
// are present.
func FromConfig(cfg config.NotifyConfig, client *http.Client) *Dispatcher {
	var notifiers []Notifier

	if cfg.EmailJS.Enabled() {
		notifiers = append(notifiers, NewEmailJS(cfg.EmailJS, cfg.Recipients, client))
	}
	if cfg.Resend.APIKey != "" {
		notifiers = append(notifiers, NewResend("resend", cfg.Resend.APIKey, cfg.Resend.From, cfg.Recipients))
	}
	if cfg.Resend.SecondaryAPIKey != "" {
		to := cfg.Resend.SecondaryRecipients
		if len(to) == 0 {
			to = cfg.Recipients
		}
		notifiers = append(notifiers, NewResend("resend-secondary", cfg.Resend.SecondaryAPIKey, cfg.Resend.From, to))
	}
	if cfg.SMTP.Enabled() {
		notifiers = append(notifiers, NewSMTP(cfg.SMTP, cfg.Recipients))
	}
	if cfg.WebhookURL != "" {
		notifiers = append(notifiers, NewWebhook(cfg.WebhookURL, cfg.Recipients, client))
	}

	if len(notifiers) == 0 {
		logger.Warn().Msg("No notification channels configured; orders will only reach the owner ledger")
	}

	return NewDispatcher(cfg.Strategy, cfg.Timeout, notifiers...)
}
