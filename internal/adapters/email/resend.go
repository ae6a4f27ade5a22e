package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"

	"portalevents/internal/domain"
)

// resendEmails is the subset of the Resend emails service used by the mailer.
type resendEmails interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type resendMailer struct {
	emails resendEmails
	from   string
	logger *slog.Logger
}

// NewResendClient builds a Resend API client.
func NewResendClient(apiKey string) *resend.Client {
	return resend.NewClient(apiKey)
}

func newResendMailer(emails resendEmails, from string, logger *slog.Logger) *resendMailer {
	return &resendMailer{emails: emails, from: from, logger: logger}
}

func (m *resendMailer) Provider() string { return ProviderResend }

func (m *resendMailer) Send(ctx context.Context, msg domain.Message) (string, error) {
	sent, err := m.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send email via resend: %w", err)
	}
	m.logger.InfoContext(ctx, "email sent via resend", "message_id", sent.Id)
	return sent.Id, nil
}
