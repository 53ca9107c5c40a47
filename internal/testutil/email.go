package testutil

import (
	"context"
	"sync"

	"github.com/andressep95/blog-service/pkg/email"
)

// EmailSender records outgoing messages instead of delivering them
type EmailSender struct {
	mu       sync.Mutex
	messages []email.Message
	Err      error
}

func (s *EmailSender) SendEmail(_ context.Context, msg email.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	s.messages = append(s.messages, msg)
	return nil
}

func (s *EmailSender) Messages() []email.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]email.Message(nil), s.messages...)
}
