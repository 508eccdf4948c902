// File: internal/filestorage/storage.go
package filestorage

import (
	"context"
	"io"
)

// Storage persists uploaded media and returns publicly reachable URLs.
type Storage interface {
	Upload(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
