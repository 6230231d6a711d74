package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aggiefind/aggiefind/internal/model"
)

// Sentinel errors mapped onto HTTP statuses by the API layer.
var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// Document is the full persisted state: one JSON file with two ordered
// sequences. Every mutation reads the whole document, changes it in memory,
// and rewrites the whole file.
type Document struct {
	Users []model.User `json:"users"`
	Items []model.Item `json:"items"`
}

// Store is the sole persistence boundary. A single mutex serializes every
// load-mutate-save cycle; there is no per-record locking or versioning,
// so concurrent writers are last-write-wins at document granularity.
type Store struct {
	path     string
	photoDir string
	mu       sync.Mutex
}

// New creates a store backed by the JSON document at path. Item photos are
// kept as individual files in a photos directory next to the document.
func New(path string) *Store {
	return &Store{
		path:     path,
		photoDir: filepath.Join(filepath.Dir(path), "photos"),
	}
}

// load reads and parses the document. A missing or unreadable file yields an
// empty document rather than an error; this silent recovery is part of the
// persistence contract.
func (s *Store) load() *Document {
	doc := &Document{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return &Document{}
	}
	return doc
}

// save serializes the document and overwrites the file. Writes go to a temp
// file in the same directory first, then rename over the target, so a crash
// mid-write cannot truncate the document.
func (s *Store) save(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing document: %w", err)
	}
	return nil
}
