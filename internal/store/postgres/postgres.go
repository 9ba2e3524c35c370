// Package postgres is the live-mode backend of the store facade, backed by a
// pgx connection pool.
package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

// New wraps an open pgx pool as a store.
func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Close releases the underlying pool.
func (s *Store) Close() {
	s.db.Close()
}
