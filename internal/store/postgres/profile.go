package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/store"
)

// GetProfile returns the user's business profile.
func (s *Store) GetProfile(ctx context.Context, userID uuid.UUID) (models.BusinessProfile, error) {
	var profile models.BusinessProfile

	err := s.db.QueryRow(ctx,
		`SELECT user_id, name, category, phone, email, pix_key_type, pix_key, contract_terms,
		        monthly_goal_cents, bio, instagram, website, message_templates, updated_at
		 FROM profiles
		 WHERE user_id = $1`,
		userID,
	).Scan(&profile.UserID, &profile.Name, &profile.Category, &profile.Phone, &profile.Email, &profile.PixKeyType,
		&profile.PixKey, &profile.ContractTerms, &profile.MonthlyGoalCents, &profile.Bio, &profile.Instagram,
		&profile.Website, &profile.Templates, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile, store.ErrNotFound
		}
		return profile, err
	}

	return profile, nil
}

// UpdateProfile replaces the business profile wholesale.
func (s *Store) UpdateProfile(ctx context.Context, profile models.BusinessProfile) (models.BusinessProfile, error) {
	var updated models.BusinessProfile

	err := s.db.QueryRow(ctx,
		`UPDATE profiles
		 SET name = $2,
		     category = $3,
		     phone = $4,
		     email = $5,
		     pix_key_type = $6,
		     pix_key = $7,
		     contract_terms = $8,
		     monthly_goal_cents = $9,
		     bio = $10,
		     instagram = $11,
		     website = $12,
		     message_templates = $13,
		     updated_at = NOW()
		 WHERE user_id = $1
		 RETURNING user_id, name, category, phone, email, pix_key_type, pix_key, contract_terms,
		           monthly_goal_cents, bio, instagram, website, message_templates, updated_at`,
		profile.UserID, profile.Name, profile.Category, profile.Phone, profile.Email, profile.PixKeyType,
		profile.PixKey, profile.ContractTerms, profile.MonthlyGoalCents, profile.Bio, profile.Instagram,
		profile.Website, profile.Templates,
	).Scan(&updated.UserID, &updated.Name, &updated.Category, &updated.Phone, &updated.Email, &updated.PixKeyType,
		&updated.PixKey, &updated.ContractTerms, &updated.MonthlyGoalCents, &updated.Bio, &updated.Instagram,
		&updated.Website, &updated.Templates, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return updated, store.ErrNotFound
		}
		return updated, err
	}

	return updated, nil
}
