// File: internal/mail/sendgrid.go
package mail

import (
	"context"
	"fmt"

	"school_portal_backend/internal/config"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendgridService sends mail through the SendGrid API.
type SendgridService struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
	logger   *zap.Logger
}

var _ Service = (*SendgridService)(nil)

// NewSendgridService creates a SendGrid-backed mail service.
func NewSendgridService(cfg *config.Config, logger *zap.Logger) *SendgridService {
	return &SendgridService{
		client:   sendgrid.NewSendClient(cfg.SendgridAPIKey),
		fromName: cfg.MailFromName,
		fromAddr: cfg.MailFromAddress,
		logger:   logger.Named("SendgridMail"),
	}
}

func (s *SendgridService) Send(_ context.Context, email Email) error {
	from := sgmail.NewEmail(s.fromName, s.fromAddr)
	to := sgmail.NewEmail("", email.To)
	message := sgmail.NewSingleEmail(from, email.Subject, to, email.Body, email.Body)

	resp, err := s.client.Send(message)
	if err != nil {
		s.logger.Error("SendGrid request failed", zap.Error(err), zap.String("to", email.To))
		return err
	}
	if resp.StatusCode >= 400 {
		s.logger.Error("SendGrid rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("to", email.To))
		return fmt.Errorf("sendgrid: unexpected status %d", resp.StatusCode)
	}

	s.logger.Debug("Email sent", zap.String("to", email.To), zap.String("subject", email.Subject))
	return nil
}
