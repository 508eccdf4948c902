// File: internal/filestorage/provider.go
package filestorage

import (
	"context"
	"fmt"

	"school_portal_backend/internal/config"

	"go.uber.org/zap"
)

// MediaURLPrefix is where the local backend's files are served from.
const MediaURLPrefix = "/media"

// NewStorage picks the storage backend from configuration.
func NewStorage(cfg *config.Config, logger *zap.Logger) (Storage, error) {
	switch cfg.StorageBackend {
	case "s3":
		return NewS3Storage(context.Background(), cfg, logger)
	case "local", "":
		return NewLocalStorage(cfg.LocalStoragePath, MediaURLPrefix, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
