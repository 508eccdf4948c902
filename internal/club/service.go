// File: internal/club/service.go
package club

import (
	"context"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service handles club business logic.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new club service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// defaultClubs are seeded on first boot so the activities page is never empty.
var defaultClubs = []Club{
	{Slug: "club-theatre", NameFR: "Club Théâtre", NameAR: "نادي المسرح"},
	{Slug: "club-sciences", NameFR: "Club Sciences", NameAR: "نادي العلوم"},
	{Slug: "club-sport", NameFR: "Club Sport", NameAR: "النادي الرياضي"},
	{Slug: "club-lecture", NameFR: "Club Lecture", NameAR: "نادي القراءة"},
}

// SeedDefaultClubs inserts the default club list when the table is empty.
func (s *Service) SeedDefaultClubs(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i := range defaultClubs {
		club := defaultClubs[i]
		club.IsActive = true
		if err := s.repo.Create(ctx, &club); err != nil {
			s.logger.Error("Failed to seed default club", zap.Error(err), zap.String("slug", club.Slug))
			return err
		}
	}
	s.logger.Info("Seeded default clubs", zap.Int("count", len(defaultClubs)))
	return nil
}

func (s *Service) CreateClub(ctx context.Context, req CreateClubRequest) (*Club, error) {
	club := &Club{
		Slug:          slug.Make(req.NameFR),
		NameFR:        req.NameFR,
		NameAR:        req.NameAR,
		DescriptionFR: req.DescriptionFR,
		DescriptionAR: req.DescriptionAR,
		ImageURL:      req.ImageURL,
		IsActive:      true,
	}
	if err := s.repo.Create(ctx, club); err != nil {
		return nil, err
	}
	return club, nil
}

func (s *Service) UpdateClub(ctx context.Context, id uuid.UUID, req UpdateClubRequest) (*Club, error) {
	club, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.NameFR != nil {
		club.NameFR = *req.NameFR
		club.Slug = slug.Make(*req.NameFR)
	}
	if req.NameAR != nil {
		club.NameAR = *req.NameAR
	}
	if req.DescriptionFR != nil {
		club.DescriptionFR = *req.DescriptionFR
	}
	if req.DescriptionAR != nil {
		club.DescriptionAR = *req.DescriptionAR
	}
	if req.ImageURL != nil {
		club.ImageURL = req.ImageURL
	}
	if req.IsActive != nil {
		club.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, club); err != nil {
		return nil, err
	}
	return club, nil
}

func (s *Service) GetClubBySlug(ctx context.Context, clubSlug string) (*Club, error) {
	return s.repo.FindBySlug(ctx, clubSlug)
}

func (s *Service) DeleteClub(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ActiveClubs(ctx context.Context) ([]Club, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) AllClubs(ctx context.Context) ([]Club, error) {
	return s.repo.ListAll(ctx)
}
