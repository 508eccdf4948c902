// File: internal/sitesettings/service.go
package sitesettings

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service reads and updates the singleton settings row.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new site settings service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Get returns the settings row, creating an empty one on first access.
func (s *Service) Get(ctx context.Context) (*SiteSettings, error) {
	var settings SiteSettings
	err := s.db.WithContext(ctx).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = SiteSettings{}
	if err := s.db.WithContext(ctx).Create(&settings).Error; err != nil {
		s.logger.Error("Failed to create initial site settings row", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Created initial site settings row")
	return &settings, nil
}

// Update applies a partial update to the settings row.
func (s *Service) Update(ctx context.Context, req UpdateSettingsRequest) (*SiteSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.SchoolNameFR != nil {
		settings.SchoolNameFR = *req.SchoolNameFR
	}
	if req.SchoolNameAR != nil {
		settings.SchoolNameAR = *req.SchoolNameAR
	}
	if req.AboutFR != nil {
		settings.AboutFR = *req.AboutFR
	}
	if req.AboutAR != nil {
		settings.AboutAR = *req.AboutAR
	}
	if req.Address != nil {
		settings.Address = req.Address
	}
	if req.Phone != nil {
		settings.Phone = req.Phone
	}
	if req.ContactEmail != nil {
		settings.ContactEmail = req.ContactEmail
	}
	if req.FacebookURL != nil {
		settings.FacebookURL = req.FacebookURL
	}
	if req.YoutubeURL != nil {
		settings.YoutubeURL = req.YoutubeURL
	}
	if req.LogoURL != nil {
		settings.LogoURL = req.LogoURL
	}

	if err := s.db.WithContext(ctx).Save(settings).Error; err != nil {
		s.logger.Error("Failed to update site settings", zap.Error(err))
		return nil, err
	}
	return settings, nil
}
