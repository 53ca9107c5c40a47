package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// ResendSender implements Sender using Resend
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a new Resend-backed sender
func NewResendSender(config *Config) (*ResendSender, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	if config.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}

	return &ResendSender{
		client: resend.NewClient(config.APIKey),
	}, nil
}

// SendEmail sends msg through the Resend API
func (s *ResendSender) SendEmail(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}

	slog.InfoContext(ctx, "email sent", "to", msg.To, "subject", msg.Subject, "id", sent.Id)
	return nil
}

// LogSender only logs messages. Used when email delivery is disabled.
type LogSender struct{}

func (LogSender) SendEmail(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "email delivery disabled, message not sent", "to", msg.To, "subject", msg.Subject)
	return nil
}
