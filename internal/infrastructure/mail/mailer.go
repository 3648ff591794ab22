package mail

import "context"

// Message is a rendered transactional email, carrying both an HTML body and
// its plain-text counterpart.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer sends transactional emails. Implementations: SMTP, Resend, and a
// log-only dev mailer.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
