package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/store"
)

// ListProposals returns the user's proposals, newest first.
func (s *Store) ListProposals(ctx context.Context, userID uuid.UUID) ([]models.Proposal, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, client_name, event_name, amount_cents, event_date, status, created_at, updated_at
		 FROM proposals
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	proposals := make([]models.Proposal, 0)
	for rows.Next() {
		var proposal models.Proposal

		err := rows.Scan(&proposal.ID, &proposal.UserID, &proposal.ClientName, &proposal.EventName, &proposal.AmountCents, &proposal.EventDate, &proposal.Status, &proposal.CreatedAt, &proposal.UpdatedAt)
		if err != nil {
			return nil, err
		}

		proposals = append(proposals, proposal)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return proposals, nil
}

// GetProposal returns a proposal of the user by identifier.
func (s *Store) GetProposal(ctx context.Context, userID, id uuid.UUID) (models.Proposal, error) {
	var proposal models.Proposal

	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, client_name, event_name, amount_cents, event_date, status, created_at, updated_at
		 FROM proposals
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&proposal.ID, &proposal.UserID, &proposal.ClientName, &proposal.EventName, &proposal.AmountCents, &proposal.EventDate, &proposal.Status, &proposal.CreatedAt, &proposal.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return proposal, store.ErrNotFound
		}
		return proposal, err
	}

	return proposal, nil
}

// InsertProposal persists a new proposal.
func (s *Store) InsertProposal(ctx context.Context, proposal models.Proposal) (models.Proposal, error) {
	var created models.Proposal

	err := s.db.QueryRow(ctx,
		`INSERT INTO proposals (user_id, client_name, event_name, amount_cents, event_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, user_id, client_name, event_name, amount_cents, event_date, status, created_at, updated_at`,
		proposal.UserID, proposal.ClientName, proposal.EventName, proposal.AmountCents, proposal.EventDate, proposal.Status,
	).Scan(&created.ID, &created.UserID, &created.ClientName, &created.EventName, &created.AmountCents, &created.EventDate, &created.Status, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return created, err
	}

	return created, nil
}

// UpdateProposal replaces stage (and optionally amount) and returns the stage
// that was persisted before the write. The FOR UPDATE subquery pins the row so
// the previous stage cannot change between read and write.
func (s *Store) UpdateProposal(ctx context.Context, userID, id uuid.UUID, update store.ProposalUpdate) (models.Proposal, models.ProposalStatus, error) {
	var proposal models.Proposal
	var previous models.ProposalStatus

	err := s.db.QueryRow(ctx,
		`UPDATE proposals p
		 SET status = $3,
		     amount_cents = COALESCE($4, p.amount_cents),
		     updated_at = NOW()
		 FROM (
			SELECT id, status AS previous_status
			FROM proposals
			WHERE id = $1 AND user_id = $2
			FOR UPDATE
		 ) prev
		 WHERE p.id = prev.id
		 RETURNING p.id, p.user_id, p.client_name, p.event_name, p.amount_cents, p.event_date, p.status, p.created_at, p.updated_at, prev.previous_status`,
		id, userID, update.Status, update.AmountCents,
	).Scan(&proposal.ID, &proposal.UserID, &proposal.ClientName, &proposal.EventName, &proposal.AmountCents, &proposal.EventDate, &proposal.Status, &proposal.CreatedAt, &proposal.UpdatedAt, &previous)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return proposal, "", store.ErrNotFound
		}
		return proposal, "", err
	}

	return proposal, previous, nil
}
