// File: internal/filestorage/local.go
package filestorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// LocalStorage writes uploads to a directory served as static files. The
// default backend for development.
type LocalStorage struct {
	basePath string
	baseURL  string
	logger   *zap.Logger
}

// NewLocalStorage creates a local storage backend rooted at basePath. Files
// end up reachable under baseURL (e.g. "/media").
func NewLocalStorage(basePath, baseURL string, logger *zap.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", basePath, err)
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		logger:   logger.Named("LocalStorage"),
	}, nil
}

func (s *LocalStorage) Upload(_ context.Context, key string, file io.Reader, _ string) (string, error) {
	cleaned := filepath.Clean(key)
	if strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}

	fullPath := filepath.Join(s.basePath, cleaned)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}

	s.logger.Debug("File stored locally", zap.String("key", cleaned))
	return s.baseURL + "/" + filepath.ToSlash(cleaned), nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	cleaned := filepath.Clean(key)
	if strings.Contains(cleaned, "..") {
		return fmt.Errorf("invalid storage key: %s", key)
	}
	err := os.Remove(filepath.Join(s.basePath, cleaned))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
