package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"blog-api/internal/domain"
)

// DiskStore keeps post bodies as files under a root directory, one file per
// key.
type DiskStore struct {
	root string
}

// NewDiskStore creates root if needed and returns a store over it.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create content dir: %w", err)
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(clean) || clean == "." || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("%w: invalid content key %q", domain.ErrInvalidInput, key)
	}
	return filepath.Join(s.root, clean), nil
}

// Put writes content atomically by renaming a temp file into place.
func (s *DiskStore) Put(_ context.Context, key, content string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return fmt.Errorf("failed to create content dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".content-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write content: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("failed to store content: %w", err)
	}
	return nil
}

// Get reads the content under key.
func (s *DiskStore) Get(_ context.Context, key string) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", domain.ErrContentNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	return string(data), nil
}

// Delete removes the content under key. A missing file is not an error.
func (s *DiskStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	return nil
}

// Ping checks that the root directory is still accessible.
func (s *DiskStore) Ping(_ context.Context) error {
	if _, err := os.Stat(s.root); err != nil {
		return fmt.Errorf("content dir unavailable: %w", err)
	}
	return nil
}

var _ domain.ContentStore = (*DiskStore)(nil)
