package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore keeps uploaded documents on the local filesystem, one file per
// document, named by its ID so concurrent uploads with the same filename
// never collide.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", baseDir, err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// Save streams the upload to disk and returns its storage path and size.
func (s *LocalStore) Save(id uuid.UUID, filename string, r io.Reader) (string, int64, error) {
	path := s.pathFor(id, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create upload file %s: %w", path, err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("failed to write upload file: %w", err)
	}
	return path, n, nil
}

// Remove deletes the stored file. A missing file is not an error.
func (s *LocalStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

func (s *LocalStore) pathFor(id uuid.UUID, filename string) string {
	ext := filepath.Ext(filename)
	return filepath.Join(s.baseDir, id.String()+ext)
}
