// File: internal/event/service.go
package event

import (
	"context"
	"time"

	"school_portal_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles event business logic.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new event service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		return nil, common.ErrBadRequest.WithDetails("Event end time cannot be before its start time.")
	}
	evt := &Event{
		TitleFR:       req.TitleFR,
		TitleAR:       req.TitleAR,
		DescriptionFR: req.DescriptionFR,
		DescriptionAR: req.DescriptionAR,
		Location:      req.Location,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
	}
	if err := s.repo.Create(ctx, evt); err != nil {
		s.logger.Error("Failed to create event", zap.Error(err))
		return nil, err
	}
	return evt, nil
}

func (s *Service) GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) UpcomingEvents(ctx context.Context, page, pageSize int) ([]Event, *common.Pagination, error) {
	return s.repo.ListUpcoming(ctx, time.Now(), page, pageSize)
}

func (s *Service) ArchivedEvents(ctx context.Context, page, pageSize int) ([]Event, *common.Pagination, error) {
	return s.repo.ListArchived(ctx, page, pageSize)
}

// ArchivePastEvents flags events that already ended. Run daily by the cron
// scheduler.
func (s *Service) ArchivePastEvents(ctx context.Context) (int64, error) {
	archived, err := s.repo.ArchivePast(ctx, time.Now())
	if err != nil {
		s.logger.Error("Event archival failed", zap.Error(err))
		return 0, err
	}
	if archived > 0 {
		s.logger.Info("Archived past events", zap.Int64("count", archived))
	}
	return archived, nil
}
