package postgres

import (
	"context"

	"github.com/google/uuid"

	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/store"
)

// ListSuppliers returns the user's suppliers, newest first.
func (s *Store) ListSuppliers(ctx context.Context, userID uuid.UUID) ([]models.Supplier, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, name, category, phone, created_at
		 FROM suppliers
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suppliers := make([]models.Supplier, 0)
	for rows.Next() {
		var supplier models.Supplier

		err := rows.Scan(&supplier.ID, &supplier.UserID, &supplier.Name, &supplier.Category, &supplier.Phone, &supplier.CreatedAt)
		if err != nil {
			return nil, err
		}

		suppliers = append(suppliers, supplier)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return suppliers, nil
}

// InsertSupplier persists a new supplier record.
func (s *Store) InsertSupplier(ctx context.Context, supplier models.Supplier) (models.Supplier, error) {
	var created models.Supplier

	err := s.db.QueryRow(ctx,
		`INSERT INTO suppliers (user_id, name, category, phone)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, name, category, phone, created_at`,
		supplier.UserID, supplier.Name, supplier.Category, supplier.Phone,
	).Scan(&created.ID, &created.UserID, &created.Name, &created.Category, &created.Phone, &created.CreatedAt)
	if err != nil {
		return created, err
	}

	return created, nil
}

// DeleteSupplier removes a supplier of the user.
func (s *Store) DeleteSupplier(ctx context.Context, userID, id uuid.UUID) error {
	cmd, err := s.db.Exec(ctx,
		`DELETE FROM suppliers
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
