// File: internal/mail/console.go
package mail

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// ConsoleService logs outbound mail instead of sending it. Used in development
// when no SendGrid key is configured, and in tests to assert on what was sent.
type ConsoleService struct {
	logger *zap.Logger

	mu   sync.Mutex
	sent []Email
}

// NewConsoleService creates a log-only mail service.
func NewConsoleService(logger *zap.Logger) *ConsoleService {
	return &ConsoleService{logger: logger.Named("ConsoleMail")}
}

func (s *ConsoleService) Send(_ context.Context, email Email) error {
	s.mu.Lock()
	s.sent = append(s.sent, email)
	s.mu.Unlock()

	s.logger.Info("Email (not sent, console backend)",
		zap.String("to", email.To),
		zap.String("subject", email.Subject))
	return nil
}

// Sent returns a copy of everything recorded so far.
func (s *ConsoleService) Sent() []Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Email, len(s.sent))
	copy(out, s.sent)
	return out
}
