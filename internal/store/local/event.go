package local

import (
	"context"

	"github.com/google/uuid"

	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/store"
)

// ListEvents returns the user's explicit events.
func (s *Store) ListEvents(_ context.Context, userID uuid.UUID) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(userID)
	if err != nil {
		return nil, err
	}

	events := make([]models.Event, len(doc.Events))
	copy(events, doc.Events)
	return events, nil
}

// GetEvent returns an explicit event of the user by identifier.
func (s *Store) GetEvent(_ context.Context, userID uuid.UUID, id string) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(userID)
	if err != nil {
		return models.Event{}, err
	}

	for _, event := range doc.Events {
		if event.ID == id {
			return event, nil
		}
	}

	return models.Event{}, store.ErrNotFound
}

// InsertEvent persists a new explicit event.
func (s *Store) InsertEvent(_ context.Context, event models.Event) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(event.UserID)
	if err != nil {
		return models.Event{}, err
	}

	event.ID = uuid.NewString()
	event.CreatedAt = now()
	event.UpdatedAt = event.CreatedAt

	doc.Events = append(doc.Events, event)
	if err := s.saveDocument(event.UserID, doc); err != nil {
		return models.Event{}, err
	}

	return event, nil
}

// UpdateEvent replaces the stored event wholesale.
func (s *Store) UpdateEvent(_ context.Context, event models.Event) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(event.UserID)
	if err != nil {
		return models.Event{}, err
	}

	for i, existing := range doc.Events {
		if existing.ID != event.ID {
			continue
		}

		event.CreatedAt = existing.CreatedAt
		event.UpdatedAt = now()
		doc.Events[i] = event

		if err := s.saveDocument(event.UserID, doc); err != nil {
			return models.Event{}, err
		}

		return event, nil
	}

	return models.Event{}, store.ErrNotFound
}

// DeleteEvent removes an explicit event along with its owned lists.
func (s *Store) DeleteEvent(_ context.Context, userID uuid.UUID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(userID)
	if err != nil {
		return err
	}

	for i, event := range doc.Events {
		if event.ID != id {
			continue
		}

		doc.Events = append(doc.Events[:i], doc.Events[i+1:]...)
		return s.saveDocument(userID, doc)
	}

	return store.ErrNotFound
}
