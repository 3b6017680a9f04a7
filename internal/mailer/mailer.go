// Package mailer sends transactional email over SMTP.
package mailer

import (
	"fmt"
	"html"

	"github.com/gardenops/inventory-backend/internal/config"
	"gopkg.in/gomail.v2"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

// Enabled reports whether SMTP is configured. Without a host the
// mailer is a no-op and login proceeds without notification.
func (m *Mailer) Enabled() bool {
	return m.dialer.Host != ""
}

// SendLoginNotification mails the user that their account was just
// signed in to.
func (m *Mailer) SendLoginNotification(toEmail, firstName string) error {
	if !m.Enabled() {
		return nil
	}

	name := firstName
	if name == "" {
		name = toEmail
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Welcome back!")
	msg.SetBody("text/html", fmt.Sprintf(
		"<h1>Welcome back, %s!</h1>"+
			"<p>Thank you for logging in. We're excited to have you back!</p>"+
			"<p>If you didn't log in to your account, please secure your account immediately.</p>",
		html.EscapeString(name)))

	return m.dialer.DialAndSend(msg)
}
