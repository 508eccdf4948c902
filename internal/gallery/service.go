// File: internal/gallery/service.go
package gallery

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"school_portal_backend/internal/common"
	"school_portal_backend/internal/filestorage"
	"school_portal_backend/internal/platform/crypto"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Service handles gallery business logic.
type Service struct {
	repo    Repository
	storage filestorage.Storage
	logger  *zap.Logger
}

// NewService creates a new gallery service.
func NewService(repo Repository, storage filestorage.Storage, logger *zap.Logger) *Service {
	return &Service{repo: repo, storage: storage, logger: logger}
}

// UploadImage stores the file and records a gallery entry.
func (s *Service) UploadImage(
	ctx context.Context,
	uploadedBy uuid.UUID,
	filename, contentType string,
	file io.Reader,
	captionFR, captionAR string,
) (*GalleryImage, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExtensions[ext] {
		return nil, common.ErrBadRequest.WithDetails("Unsupported image type. Allowed: jpg, jpeg, png, webp.")
	}

	random, err := crypto.GenerateSecureRandomString(12)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("gallery/%s%s", random, ext)

	url, err := s.storage.Upload(ctx, key, file, contentType)
	if err != nil {
		s.logger.Error("Failed to store gallery image", zap.Error(err), zap.String("key", key))
		return nil, common.ErrInternalServer.WithDetails("Could not store the uploaded image.")
	}

	img := &GalleryImage{
		CaptionFR:  captionFR,
		CaptionAR:  captionAR,
		URL:        url,
		StorageKey: key,
		UploadedBy: uploadedBy,
	}
	if err := s.repo.Create(ctx, img); err != nil {
		// Roll back the stored file; an orphaned record is worse than an
		// orphaned file but neither should linger.
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Warn("Failed to remove stored file after DB error", zap.Error(delErr), zap.String("key", key))
		}
		s.logger.Error("Failed to record gallery image", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Gallery image uploaded", zap.String("imageID", img.ID.String()), zap.String("key", key))
	return img, nil
}

// DeleteImage removes the record and the stored file.
func (s *Service) DeleteImage(ctx context.Context, id uuid.UUID) error {
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, img.StorageKey); err != nil {
		s.logger.Warn("Failed to delete stored file", zap.Error(err), zap.String("key", img.StorageKey))
	}
	return nil
}

// ListImages returns gallery images, newest first.
func (s *Service) ListImages(ctx context.Context, page, pageSize int) ([]GalleryImage, *common.Pagination, error) {
	return s.repo.List(ctx, page, pageSize)
}
