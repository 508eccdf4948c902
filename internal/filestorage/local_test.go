// File: internal/filestorage/local_test.go
package filestorage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "/media", zap.NewNop())
	require.NoError(t, err)

	url, err := storage.Upload(context.Background(), "gallery/photo.jpg", strings.NewReader("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/media/gallery/photo.jpg", url)

	content, err := os.ReadFile(filepath.Join(dir, "gallery", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(content))

	require.NoError(t, storage.Delete(context.Background(), "gallery/photo.jpg"))
	_, err = os.Stat(filepath.Join(dir, "gallery", "photo.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_RejectsPathTraversal(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "/media", zap.NewNop())
	require.NoError(t, err)

	_, err = storage.Upload(context.Background(), "../outside.txt", strings.NewReader("x"), "text/plain")
	assert.Error(t, err)
}

func TestLocalStorage_DeleteMissingFileIsNoOp(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "/media", zap.NewNop())
	require.NoError(t, err)

	assert.NoError(t, storage.Delete(context.Background(), "gallery/never-uploaded.jpg"))
}
