package notification

import (
	"context"
	"fmt"

	"medlink/models"

	"gopkg.in/gomail.v2"
)

// Mailer sends one email.
type Mailer interface {
	Send(ctx context.Context, mail models.Mail) error
}

// SMTPMailer delivers mail through an authenticated SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, password string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   user,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, mail models.Mail) error {
	if len(mail.To) == 0 {
		return fmt.Errorf("SMTPMailer: no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", mail.To...)
	if mail.ReplyTo != "" {
		msg.SetHeader("Reply-To", mail.ReplyTo)
	}
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/html", mail.HTML)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("SMTPMailer: failed to send %q: %w", mail.Subject, err)
	}
	return nil
}
