package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/aggiefind/aggiefind/internal/model"
)

// CreateUser appends a new user. Fails with ErrUsernameTaken if the username
// is already registered.
func (s *Store) CreateUser(username, passwordHash, name, email, role string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	for _, u := range doc.Users {
		if u.Username == username {
			return nil, ErrUsernameTaken
		}
	}

	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		Name:         name,
		Email:        email,
		Role:         role,
		CreatedAt:    time.Now().UnixMilli(),
	}
	doc.Users = append(doc.Users, user)

	if err := s.save(doc); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser returns a user by ID, or nil if absent.
func (s *Store) GetUser(id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	for i := range doc.Users {
		if doc.Users[i].ID == id {
			u := doc.Users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// GetUserByUsername returns a user by login name, or nil if absent.
func (s *Store) GetUserByUsername(username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	for i := range doc.Users {
		if doc.Users[i].Username == username {
			u := doc.Users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// ListUsers returns all users in registration order.
func (s *Store) ListUsers() ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	return doc.Users, nil
}
