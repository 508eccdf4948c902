// File: internal/message/service.go
package message

import (
	"context"
	"fmt"
	"time"

	"school_portal_backend/internal/common"
	"school_portal_backend/internal/config"
	"school_portal_backend/internal/mail"
	"school_portal_backend/internal/platform/crypto"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles contact message business logic.
type Service struct {
	repo        Repository
	mailService mail.Service
	cfg         *config.Config
	logger      *zap.Logger
}

// NewService creates a new contact message service.
func NewService(repo Repository, mailService mail.Service, cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{
		repo:        repo,
		mailService: mailService,
		cfg:         cfg,
		logger:      logger,
	}
}

// Submit stores a contact form submission and notifies the school inbox.
// Mail delivery is best-effort; the submission succeeds regardless.
func (s *Service) Submit(ctx context.Context, req SubmitMessageRequest) (*ContactMessage, error) {
	locale := req.Locale
	if locale == "" {
		locale = common.LocaleFrench
	}

	refCode, err := crypto.GenerateReferenceCode("MSG")
	if err != nil {
		s.logger.Error("Failed to generate reference code", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not submit your message, please try again.")
	}

	msg := &ContactMessage{
		ReferenceCode: refCode,
		SenderName:    req.SenderName,
		SenderEmail:   req.SenderEmail,
		SenderPhone:   req.SenderPhone,
		Subject:       req.Subject,
		Body:          req.Body,
		Locale:        locale,
		Status:        StatusPending,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		s.logger.Error("Failed to store contact message", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not submit your message, please try again.")
	}

	if s.mailService != nil && s.cfg != nil && s.cfg.ContactInboxEmail != "" {
		notice := mail.Email{
			To:      s.cfg.ContactInboxEmail,
			Subject: fmt.Sprintf("[%s] New contact message from %s", msg.ReferenceCode, msg.SenderName),
			Body:    fmt.Sprintf("From: %s <%s>\nSubject: %s\n\n%s", msg.SenderName, msg.SenderEmail, msg.Subject, msg.Body),
		}
		if err := s.mailService.Send(ctx, notice); err != nil {
			s.logger.Warn("Failed to forward contact message to inbox",
				zap.Error(err), zap.String("reference", msg.ReferenceCode))
		}
	}

	s.logger.Info("Contact message submitted",
		zap.String("messageID", msg.ID.String()),
		zap.String("reference", msg.ReferenceCode))
	return msg, nil
}

// GetMessageByID returns a single message.
func (s *Service) GetMessageByID(ctx context.Context, id uuid.UUID) (*ContactMessage, error) {
	return s.repo.FindByID(ctx, id)
}

// PendingMessages returns up to limit pending messages, newest first. Backs
// the message stream of the admin notification feed.
func (s *Service) PendingMessages(ctx context.Context, limit int) ([]ContactMessage, error) {
	return s.repo.FindPending(ctx, limit)
}

// ListMessages returns a paginated message listing with an optional status filter.
func (s *Service) ListMessages(ctx context.Context, status string, page, pageSize int) ([]ContactMessage, *common.Pagination, error) {
	msgs, pagination, err := s.repo.List(ctx, status, page, pageSize)
	if err != nil {
		s.logger.Error("Failed to list contact messages", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Could not retrieve messages.")
	}
	return msgs, pagination, nil
}

// MarkMessageAsRead transitions a pending message to read.
func (s *Service) MarkMessageAsRead(ctx context.Context, id uuid.UUID) error {
	msg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if msg.Status == StatusRead {
		return nil
	}

	now := time.Now()
	msg.Status = StatusRead
	msg.ReadAt = &now
	if err := s.repo.Update(ctx, msg); err != nil {
		s.logger.Error("Failed to mark message as read", zap.Error(err), zap.String("messageID", id.String()))
		return err
	}
	s.logger.Info("Contact message marked as read", zap.String("messageID", id.String()))
	return nil
}
