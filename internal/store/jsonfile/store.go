// Package jsonfile stores documents as one JSON file per key in a directory.
// Suitable for a single local user who wants readable saves.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

var validKey = regexp.MustCompile(`^[a-z0-9_]+$`)

// Store implements store.Documents on the filesystem.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New returns a Store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create document dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid document key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Load returns the stored document, or nil when the key was never saved.
func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read document %q: %w", key, err)
	}
	return b, nil
}

// Save replaces the document atomically through a temp file and rename.
func (s *Store) Save(_ context.Context, key string, body []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return fmt.Errorf("write document %q: %w", key, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("replace document %q: %w", key, err)
	}
	return nil
}
