// Package localstore persists a device's bookmark collection as a single
// JSON file, mirroring the extension's storage area: Load returns the whole
// collection, Save replaces it wholesale. Callers read-modify-write; two
// racing writers lose the earlier save, which is an accepted limitation of
// this layer.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pinbox/pinbox/internal/domain"
)

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted collection. A missing file yields an empty
// collection and no error; an unreadable or corrupt file yields an empty
// collection and the error, so callers can log it and keep going.
func (s *Store) Load() ([]domain.Bookmark, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Bookmark{}, nil
		}
		return []domain.Bookmark{}, fmt.Errorf("failed to read collection file: %w", err)
	}

	var items []domain.Bookmark
	if err := json.Unmarshal(data, &items); err != nil {
		return []domain.Bookmark{}, fmt.Errorf("failed to parse collection file: %w", err)
	}
	if items == nil {
		items = []domain.Bookmark{}
	}
	return items, nil
}

// Save replaces the persisted collection wholesale.
func (s *Store) Save(items []domain.Bookmark) error {
	if items == nil {
		items = []domain.Bookmark{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create collection directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write collection file: %w", err)
	}
	return nil
}
