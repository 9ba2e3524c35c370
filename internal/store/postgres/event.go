package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/store"
)

// Derived event ids ("prop-...") are never persisted, so a non-uuid id can
// only miss.
func parseEventID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, store.ErrNotFound
	}
	return parsed, nil
}

// ListEvents returns the user's explicit events ordered by date.
func (s *Store) ListEvents(ctx context.Context, userID uuid.UUID) ([]models.Event, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id::text, user_id, title, date, type, client_name, location, start_time, end_time,
		        checklist, timeline, costs, amount_cents, created_at, updated_at
		 FROM events
		 WHERE user_id = $1
		 ORDER BY date, created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// GetEvent returns an explicit event of the user by identifier.
func (s *Store) GetEvent(ctx context.Context, userID uuid.UUID, id string) (models.Event, error) {
	eventID, err := parseEventID(id)
	if err != nil {
		return models.Event{}, err
	}

	row := s.db.QueryRow(ctx,
		`SELECT id::text, user_id, title, date, type, client_name, location, start_time, end_time,
		        checklist, timeline, costs, amount_cents, created_at, updated_at
		 FROM events
		 WHERE id = $1 AND user_id = $2`,
		eventID, userID,
	)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event, store.ErrNotFound
		}
		return event, err
	}

	return event, nil
}

// InsertEvent persists a new explicit event.
func (s *Store) InsertEvent(ctx context.Context, event models.Event) (models.Event, error) {
	row := s.db.QueryRow(ctx,
		`INSERT INTO events (id, user_id, title, date, type, client_name, location, start_time, end_time, checklist, timeline, costs, amount_cents)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id::text, user_id, title, date, type, client_name, location, start_time, end_time, checklist, timeline, costs, amount_cents, created_at, updated_at`,
		uuid.New(), event.UserID, event.Title, event.Date, event.Type, event.ClientName, event.Location, event.StartTime, event.EndTime,
		jsonOrEmpty(event.Checklist), jsonOrEmpty(event.Timeline), jsonOrEmpty(event.Costs), event.AmountCents,
	)

	return scanEvent(row)
}

// UpdateEvent replaces the stored event, including its owned checklist,
// timeline and cost lists.
func (s *Store) UpdateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	eventID, err := parseEventID(event.ID)
	if err != nil {
		return models.Event{}, err
	}

	row := s.db.QueryRow(ctx,
		`UPDATE events
		 SET title = $3,
		     date = $4,
		     type = $5,
		     client_name = $6,
		     location = $7,
		     start_time = $8,
		     end_time = $9,
		     checklist = $10,
		     timeline = $11,
		     costs = $12,
		     amount_cents = $13,
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id::text, user_id, title, date, type, client_name, location, start_time, end_time, checklist, timeline, costs, amount_cents, created_at, updated_at`,
		eventID, event.UserID, event.Title, event.Date, event.Type, event.ClientName, event.Location, event.StartTime, event.EndTime,
		jsonOrEmpty(event.Checklist), jsonOrEmpty(event.Timeline), jsonOrEmpty(event.Costs), event.AmountCents,
	)

	updated, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return updated, store.ErrNotFound
		}
		return updated, err
	}

	return updated, nil
}

// DeleteEvent removes an explicit event and, with it, its owned cost list.
func (s *Store) DeleteEvent(ctx context.Context, userID uuid.UUID, id string) error {
	eventID, err := parseEventID(id)
	if err != nil {
		return err
	}

	cmd, err := s.db.Exec(ctx,
		`DELETE FROM events
		 WHERE id = $1 AND user_id = $2`,
		eventID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}

func scanEvent(row pgx.Row) (models.Event, error) {
	var event models.Event

	err := row.Scan(&event.ID, &event.UserID, &event.Title, &event.Date, &event.Type, &event.ClientName,
		&event.Location, &event.StartTime, &event.EndTime, &event.Checklist, &event.Timeline, &event.Costs,
		&event.AmountCents, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return event, err
	}

	return event, nil
}

// jsonOrEmpty keeps jsonb columns as [] instead of NULL for empty lists.
func jsonOrEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
