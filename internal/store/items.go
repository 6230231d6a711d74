package store

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/aggiefind/aggiefind/internal/model"
)

// CreateItem assigns the item an identifier and timestamp and prepends it to
// the document, so the stored order is newest-first like the listings.
func (s *Store) CreateItem(item model.Item) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = uuid.NewString()
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().UnixMilli()
	}

	doc := s.load()
	doc.Items = append([]model.Item{item}, doc.Items...)

	if err := s.save(doc); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns all items newest-first, optionally filtered by a
// case-insensitive substring query across the searchable fields.
func (s *Store) ListItems(query string) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	items := make([]model.Item, 0, len(doc.Items))
	for _, it := range doc.Items {
		if query == "" || it.Matches(query) {
			items = append(items, it)
		}
	}
	sortNewestFirst(items)
	return items, nil
}

// ListItemsByCreator returns the items created by the given user,
// newest-first. Anonymous items are never included.
func (s *Store) ListItemsByCreator(userID string) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	var items []model.Item
	for _, it := range doc.Items {
		if it.IsCreator(userID) {
			items = append(items, it)
		}
	}
	sortNewestFirst(items)
	return items, nil
}

// GetItem returns an item by ID, or nil if absent.
func (s *Store) GetItem(id string) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	for i := range doc.Items {
		if doc.Items[i].ID == id {
			it := doc.Items[i]
			return &it, nil
		}
	}
	return nil, nil
}

// ReplaceItem overwrites the stored item with the same ID. Fails with
// ErrNotFound if no such item exists.
func (s *Store) ReplaceItem(item model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	for i := range doc.Items {
		if doc.Items[i].ID == item.ID {
			doc.Items[i] = item
			return s.save(doc)
		}
	}
	return ErrNotFound
}

// DeleteItem removes an item. Deleted items are unrecoverable. Fails with
// ErrNotFound if no such item exists.
func (s *Store) DeleteItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	kept := doc.Items[:0]
	found := false
	for _, it := range doc.Items {
		if it.ID == id {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return ErrNotFound
	}
	doc.Items = kept
	return s.save(doc)
}

func sortNewestFirst(items []model.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})
}
