package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/store"
)

// CreateUser creates an account and its empty business profile.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash string, name *string) (models.User, error) {
	var user models.User
	var nameValue *string

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return user, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = tx.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, name)
		 VALUES ($1, $2, $3)
		 RETURNING id, email, password_hash, name, created_at, updated_at`,
		email, passwordHash, name,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &nameValue, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user, store.ErrConflict
		}
		return user, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO profiles (user_id, name, message_templates)
		 VALUES ($1, '', '{}'::jsonb)`,
		user.ID,
	)
	if err != nil {
		return user, err
	}

	if err := tx.Commit(ctx); err != nil {
		return user, err
	}

	user.Name = nameValue
	return user, nil
}

// GetUserByEmail returns the account registered under email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	var nameValue *string

	err := s.db.QueryRow(ctx,
		`SELECT id, email, password_hash, name, created_at, updated_at
		 FROM users
		 WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &nameValue, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, store.ErrNotFound
		}
		return user, err
	}

	user.Name = nameValue
	return user, nil
}

// GetUserByID returns the account by identifier.
func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User
	var nameValue *string

	err := s.db.QueryRow(ctx,
		`SELECT id, email, password_hash, name, created_at, updated_at
		 FROM users
		 WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &nameValue, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, store.ErrNotFound
		}
		return user, err
	}

	user.Name = nameValue
	return user, nil
}
