package postgres

import (
	"context"

	"github.com/google/uuid"

	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/store"
)

// ListServicePackages returns the user's service packages.
func (s *Store) ListServicePackages(ctx context.Context, userID uuid.UUID) ([]models.ServicePackage, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, name, description, price_cents, created_at
		 FROM services
		 WHERE user_id = $1
		 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := make([]models.ServicePackage, 0)
	for rows.Next() {
		var pkg models.ServicePackage

		err := rows.Scan(&pkg.ID, &pkg.UserID, &pkg.Name, &pkg.Description, &pkg.PriceCents, &pkg.CreatedAt)
		if err != nil {
			return nil, err
		}

		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return packages, nil
}

// InsertServicePackage persists a new service package.
func (s *Store) InsertServicePackage(ctx context.Context, pkg models.ServicePackage) (models.ServicePackage, error) {
	var created models.ServicePackage

	err := s.db.QueryRow(ctx,
		`INSERT INTO services (user_id, name, description, price_cents)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, name, description, price_cents, created_at`,
		pkg.UserID, pkg.Name, pkg.Description, pkg.PriceCents,
	).Scan(&created.ID, &created.UserID, &created.Name, &created.Description, &created.PriceCents, &created.CreatedAt)
	if err != nil {
		return created, err
	}

	return created, nil
}

// DeleteServicePackage removes a service package of the user.
func (s *Store) DeleteServicePackage(ctx context.Context, userID, id uuid.UUID) error {
	cmd, err := s.db.Exec(ctx,
		`DELETE FROM services
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}
