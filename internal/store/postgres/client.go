package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/store"
)

// ListClients returns the user's clients, newest first.
func (s *Store) ListClients(ctx context.Context, userID uuid.UUID) ([]models.Client, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, name, phone, email, created_at
		 FROM clients
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]models.Client, 0)
	for rows.Next() {
		var client models.Client

		err := rows.Scan(&client.ID, &client.UserID, &client.Name, &client.Phone, &client.Email, &client.CreatedAt)
		if err != nil {
			return nil, err
		}

		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return clients, nil
}

// FindClientByName matches a client by name, case-insensitively.
func (s *Store) FindClientByName(ctx context.Context, userID uuid.UUID, name string) (models.Client, error) {
	var client models.Client

	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, name, phone, email, created_at
		 FROM clients
		 WHERE user_id = $1 AND LOWER(name) = LOWER($2)
		 LIMIT 1`,
		userID, name,
	).Scan(&client.ID, &client.UserID, &client.Name, &client.Phone, &client.Email, &client.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client, store.ErrNotFound
		}
		return client, err
	}

	return client, nil
}

// InsertClient persists a new client record.
func (s *Store) InsertClient(ctx context.Context, client models.Client) (models.Client, error) {
	var created models.Client

	err := s.db.QueryRow(ctx,
		`INSERT INTO clients (user_id, name, phone, email)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, name, phone, email, created_at`,
		client.UserID, client.Name, client.Phone, client.Email,
	).Scan(&created.ID, &created.UserID, &created.Name, &created.Phone, &created.Email, &created.CreatedAt)
	if err != nil {
		return created, err
	}

	return created, nil
}
