package contact

import (
	"context"
	"fmt"
	"html"
	"strings"

	"medlink/models"
	"medlink/services/notification"
	"medlink/utils"
)

type ContactService interface {
	Contact(ctx context.Context, req models.ContactRequest) error
	GetInTouch(ctx context.Context, req models.ContactRequest) error
	// Support forwards a request from a signed-in account.
	Support(ctx context.Context, senderEmail string, role models.Role, req models.SupportRequest) error
}

// DefaultContactService forwards every form to the support inbox with the
// sender as reply-to.
type DefaultContactService struct {
	Mailer       notification.Mailer
	SupportEmail string
}

func (s *DefaultContactService) Contact(ctx context.Context, req models.ContactRequest) error {
	return s.forward(ctx, "Contact form", req)
}

func (s *DefaultContactService) GetInTouch(ctx context.Context, req models.ContactRequest) error {
	return s.forward(ctx, "Get in touch", req)
}

func (s *DefaultContactService) forward(ctx context.Context, kind string, req models.ContactRequest) error {
	if strings.TrimSpace(req.Message) == "" || strings.TrimSpace(req.Email) == "" {
		return utils.NewError(utils.ErrValidation, "Email and message are required")
	}
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = "New message"
	}
	body := fmt.Sprintf("<p><b>From:</b> %s &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(req.Name), html.EscapeString(req.Email), paragraphs(req.Message))
	return s.send(ctx, models.Mail{
		ReplyTo: req.Email,
		Subject: fmt.Sprintf("[%s] %s", kind, subject),
		HTML:    body,
	})
}

func (s *DefaultContactService) Support(ctx context.Context, senderEmail string, role models.Role, req models.SupportRequest) error {
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
		return utils.NewError(utils.ErrValidation, "Subject and message are required")
	}
	body := fmt.Sprintf("<p><b>From:</b> %s (%s)</p><p>%s</p>",
		html.EscapeString(senderEmail), role, paragraphs(req.Message))
	return s.send(ctx, models.Mail{
		ReplyTo: senderEmail,
		Subject: "[Support] " + strings.TrimSpace(req.Subject),
		HTML:    body,
	})
}

func (s *DefaultContactService) send(ctx context.Context, mail models.Mail) error {
	if s.Mailer == nil || s.SupportEmail == "" {
		return utils.NewError(utils.ErrUpstream, "Email is not configured")
	}
	mail.To = []string{s.SupportEmail}
	if err := s.Mailer.Send(ctx, mail); err != nil {
		return utils.WrapError(utils.ErrUpstream, "Failed to send message", err)
	}
	return nil
}

func paragraphs(text string) string {
	return strings.ReplaceAll(html.EscapeString(strings.TrimSpace(text)), "\n", "<br>")
}
