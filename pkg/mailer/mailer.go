// Package mailer provides a lightweight SMTP client for outbound
// notification email. Delivery is a best-effort side effect of the
// contact workflow; callers decide whether a failure is fatal.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"time"
)

// Sender delivers a single outbound email.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Config carries SMTP connection settings. An empty Host disables
// delivery entirely.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpSender struct {
	cfg Config
}

// New creates a Sender. When no SMTP host is configured the returned
// sender logs and drops every message instead of failing, so local
// development works without a mail server.
func New(cfg Config) Sender {
	return &smtpSender{cfg: cfg}
}

// defaultSendTimeout bounds the whole SMTP exchange when the caller's
// context carries no deadline of its own.
const defaultSendTimeout = 30 * time.Second

// Send delivers one message. The dial honors ctx cancellation and the
// connection deadline is taken from ctx, so an abandoned request never
// leaves the exchange running past its deadline.
func (s *smtpSender) Send(ctx context.Context, to, subject, body string) error {
	if s.cfg.Host == "" {
		slog.Info("mailer disabled, dropping email", "to", to, "subject", subject)
		return nil
	}

	// The From header may carry a display name; the envelope needs the
	// bare address.
	envelopeFrom := s.cfg.From
	if parsed, err := mail.ParseAddress(s.cfg.From); err == nil {
		envelopeFrom = parsed.Address
	}

	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}

	deadline := time.Now().Add(defaultSendTimeout)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return err
		}
	}
	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(envelopeFrom); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}
