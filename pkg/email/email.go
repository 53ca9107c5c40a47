package email

import (
	"context"
)

// Message is a single outgoing HTML email
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Sender delivers email messages. Failures are returned to the caller.
type Sender interface {
	SendEmail(ctx context.Context, msg Message) error
}

// Config holds email delivery configuration
type Config struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// From formats the configured sender as "Name <address>"
func (c *Config) From() string {
	if c.FromName == "" {
		return c.FromEmail
	}
	return c.FromName + " <" + c.FromEmail + ">"
}
