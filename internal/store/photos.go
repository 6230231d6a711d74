package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// SavePhoto stores an item's processed photo next to the document. One photo
// per item; a new upload overwrites the old one.
func (s *Store) SavePhoto(itemID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.photoDir, 0o755); err != nil {
		return fmt.Errorf("creating photo directory: %w", err)
	}

	path := filepath.Join(s.photoDir, itemID+".jpg")
	tmp, err := os.CreateTemp(s.photoDir, ".photo-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing photo: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing photo: %w", err)
	}
	return nil
}

// ReadPhoto returns an item's photo bytes, or nil if none exists.
func (s *Store) ReadPhoto(itemID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.photoDir, itemID+".jpg"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading photo: %w", err)
	}
	return data, nil
}
