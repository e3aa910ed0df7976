// Package media implements the blob-store collaborator: uploaded files are
// stored under a generated name and exposed by URL. The core services never
// look inside the bytes.
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// Store saves a named blob and returns the public URL path it is served from.
type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// DiskStore stores blobs on the local filesystem under a single directory.
type DiskStore struct {
	dir    string
	logger *slog.Logger
}

// NewDiskStore creates the media directory if needed and returns a DiskStore.
func NewDiskStore(dir string, logger *slog.Logger) (*DiskStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &DiskStore{dir: dir, logger: logger}, nil
}

// Save writes the blob under a uuid-prefixed name, keeping the original
// extension so browsers get sensible content types, and returns its URL path.
func (s *DiskStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	name := uuid.New().String() + filepath.Ext(filename)
	dst := filepath.Join(s.dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	s.logger.InfoContext(ctx, "media stored",
		slog.String("name", name),
		slog.String("original", filename),
		slog.Int64("bytes", written),
	)
	return path.Join("/media", name), nil
}

var _ Store = (*DiskStore)(nil)
