// Package mailer sends inquiry notifications to a listing's published
// contact address. Delivery errors are returned to the caller, never
// swallowed: the contact endpoint surfaces them as a server error instead
// of silently dropping the notification.
package mailer

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer is the outbound-mail dependency handlers receive. It is an
// interface so tests and alternative providers can stand in for SMTP.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	Host string
	Port string
	From string
	User string // optional; enables PLAIN auth together with Pass
	Pass string
}

// NewSMTP builds an SMTPMailer from config values.
func NewSMTP(host, port, from, user, pass string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, From: from, User: user, Pass: pass}
}

// ErrNotConfigured is returned when no SMTP host is set. Surfacing it
// keeps a misconfigured deployment loud instead of silently eating mail.
var ErrNotConfigured = errors.New("mailer: smtp host not configured")

// Send delivers a single text message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	if m.Host == "" {
		return ErrNotConfigured
	}
	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Pass, m.Host)
	}
	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")
	addr := m.Host + ":" + m.Port
	if err := smtp.SendMail(addr, auth, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}
