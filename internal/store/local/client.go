package local

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/store"
)

// ListClients returns the user's clients, newest first.
func (s *Store) ListClients(_ context.Context, userID uuid.UUID) ([]models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(userID)
	if err != nil {
		return nil, err
	}

	clients := make([]models.Client, len(doc.Clients))
	copy(clients, doc.Clients)
	return clients, nil
}

// FindClientByName matches a client by name, case-insensitively.
func (s *Store) FindClientByName(_ context.Context, userID uuid.UUID, name string) (models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(userID)
	if err != nil {
		return models.Client{}, err
	}

	for _, client := range doc.Clients {
		if strings.EqualFold(client.Name, name) {
			return client, nil
		}
	}

	return models.Client{}, store.ErrNotFound
}

// InsertClient persists a new client record at the head of the list.
func (s *Store) InsertClient(_ context.Context, client models.Client) (models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(client.UserID)
	if err != nil {
		return models.Client{}, err
	}

	client.ID = uuid.New()
	client.CreatedAt = now()

	doc.Clients = append([]models.Client{client}, doc.Clients...)
	if err := s.saveDocument(client.UserID, doc); err != nil {
		return models.Client{}, err
	}

	return client, nil
}
