package mail

import (
	"context"
	"log/slog"

	"github.com/auth-flow-api/internal/config"
)

type logMailer struct{}

// NewLogMailer returns a dev-mode Mailer that only logs.
func NewLogMailer() Mailer { return logMailer{} }

func (logMailer) Send(_ context.Context, msg Message) error {
	slog.Info("email sent (dev mode)", "to", msg.To, "subject", msg.Subject, "text", msg.Text)
	return nil
}

// New selects the Mailer implementation from cfg.Provider. Unknown or
// unconfigured providers fall back to the log mailer so local development
// never needs mail credentials.
func New(cfg config.MailConfig) Mailer {
	switch cfg.Provider {
	case "smtp":
		return NewSMTPMailer(cfg)
	case "resend":
		if cfg.ResendAPIKey != "" {
			return NewResendMailer(cfg.ResendAPIKey, cfg.From)
		}
		slog.Warn("RESEND_API_KEY not set, falling back to log mailer")
	}
	return NewLogMailer()
}
