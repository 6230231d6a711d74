package store

import (
	"path/filepath"
	"testing"
)

// NewTestStore creates a fresh store backed by a temp directory, cleaned up
// with the test.
func NewTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "db.json"))
}
