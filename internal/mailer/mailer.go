// Package mailer sends lead notifications. Delivery is fire-and-forget with
// a single attempt: a failed send surfaces to the caller, who must resubmit.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/avtostart/avtostart-backend/internal/config"
)

// Message is a plain-text notification email.
type Message struct {
	Subject string
	Body    string
	ReplyTo string
}

// Mailer is the transport interface the lead handler depends on.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// SMTPMailer sends messages through a plain SMTP relay.
type SMTPMailer struct {
	addr     string
	username string
	password string
	host     string
	from     string
	to       string
}

// NewSMTPMailer builds a mailer from config. Returns an error when the
// transport is not configured.
func NewSMTPMailer(cfg config.MailConfig) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.From == "" || cfg.To == "" {
		return nil, fmt.Errorf("mail transport not configured")
	}
	port := cfg.Port
	if port == "" {
		port = "587"
	}
	return &SMTPMailer{
		addr:     cfg.Host + ":" + port,
		username: cfg.Username,
		password: cfg.Password,
		host:     cfg.Host,
		from:     cfg.From,
		to:       cfg.To,
	}, nil
}

// Send performs exactly one delivery attempt.
func (s *SMTPMailer) Send(ctx context.Context, m Message) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", s.to)
	if m.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", m.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", m.Subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(m.Body)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}
	if err := smtp.SendMail(s.addr, auth, s.from, []string{s.to}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
