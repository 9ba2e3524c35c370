package local

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/store"
)

// CreateUser registers a demo account and seeds its empty document.
func (s *Store) CreateUser(_ context.Context, email, passwordHash string, name *string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return models.User{}, err
	}

	for _, existing := range users {
		if strings.EqualFold(existing.Email, email) {
			return models.User{}, store.ErrConflict
		}
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    now(),
		UpdatedAt:    now(),
	}

	if err := s.saveUsers(append(users, user)); err != nil {
		return models.User{}, err
	}

	doc := document{Profile: models.BusinessProfile{UserID: user.ID, UpdatedAt: now()}}
	if err := s.saveDocument(user.ID, doc); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// GetUserByEmail returns the demo account registered under email.
func (s *Store) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return models.User{}, err
	}

	for _, user := range users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}

	return models.User{}, store.ErrNotFound
}

// GetUserByID returns the demo account by identifier.
func (s *Store) GetUserByID(_ context.Context, id uuid.UUID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return models.User{}, err
	}

	for _, user := range users {
		if user.ID == id {
			return user, nil
		}
	}

	return models.User{}, store.ErrNotFound
}
