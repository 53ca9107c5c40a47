package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/andressep95/blog-service/internal/config"
	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/pkg/email"
)

// EmailManager composes account emails and hands them to the delivery adapter
type EmailManager struct {
	sender          email.Sender
	from            string
	confirmationURL string
	recoveryURL     string
}

func NewEmailManager(sender email.Sender, cfg *config.EmailConfig) *EmailManager {
	from := &email.Config{FromEmail: cfg.FromEmail, FromName: cfg.FromName}
	return &EmailManager{
		sender:          sender,
		from:            from.From(),
		confirmationURL: cfg.ConfirmationURL,
		recoveryURL:     cfg.RecoveryURL,
	}
}

// SendRegistrationEmail sends the confirmation link for the user's current code
func (m *EmailManager) SendRegistrationEmail(ctx context.Context, user *domain.User) error {
	link := withQuery(m.confirmationURL, "code", user.ConfirmationCode)

	err := m.sender.SendEmail(ctx, email.Message{
		From:    m.from,
		To:      user.Email,
		Subject: "Registration confirmation",
		HTML:    email.RegistrationEmailTemplate(link),
	})
	if err != nil {
		return fmt.Errorf("failed to send registration email: %w", err)
	}

	return nil
}

// SendPasswordRecoveryEmail sends a link carrying the recovery code
func (m *EmailManager) SendPasswordRecoveryEmail(ctx context.Context, to, recoveryCode string) error {
	link := withQuery(m.recoveryURL, "recoveryCode", recoveryCode)

	err := m.sender.SendEmail(ctx, email.Message{
		From:    m.from,
		To:      to,
		Subject: "Password recovery",
		HTML:    email.PasswordRecoveryEmailTemplate(link),
	})
	if err != nil {
		return fmt.Errorf("failed to send password recovery email: %w", err)
	}

	return nil
}

func withQuery(base, key, value string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?" + key + "=" + url.QueryEscape(value)
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
