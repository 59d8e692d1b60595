package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes blobs to a directory served as /static by the
// HTTP layer. Writes are synchronous relative to the request.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(ctx context.Context, filename string, data []byte, contentType string) error {
	return os.WriteFile(filepath.Join(s.dir, filename), data, 0o644)
}

func (s *LocalStore) URL(filename string) string {
	return "/static/" + filename
}

func (s *LocalStore) Dir() string {
	return s.dir
}
