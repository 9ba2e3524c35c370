package local

import (
	"context"

	"github.com/google/uuid"

	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/store"
)

// ListProposals returns the user's proposals, newest first.
func (s *Store) ListProposals(_ context.Context, userID uuid.UUID) ([]models.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(userID)
	if err != nil {
		return nil, err
	}

	proposals := make([]models.Proposal, len(doc.Proposals))
	copy(proposals, doc.Proposals)
	return proposals, nil
}

// GetProposal returns a proposal of the user by identifier.
func (s *Store) GetProposal(_ context.Context, userID, id uuid.UUID) (models.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(userID)
	if err != nil {
		return models.Proposal{}, err
	}

	for _, proposal := range doc.Proposals {
		if proposal.ID == id {
			return proposal, nil
		}
	}

	return models.Proposal{}, store.ErrNotFound
}

// InsertProposal persists a new proposal at the head of the list.
func (s *Store) InsertProposal(_ context.Context, proposal models.Proposal) (models.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(proposal.UserID)
	if err != nil {
		return models.Proposal{}, err
	}

	proposal.ID = uuid.New()
	proposal.CreatedAt = now()
	proposal.UpdatedAt = proposal.CreatedAt

	doc.Proposals = append([]models.Proposal{proposal}, doc.Proposals...)
	if err := s.saveDocument(proposal.UserID, doc); err != nil {
		return models.Proposal{}, err
	}

	return proposal, nil
}

// UpdateProposal replaces stage (and optionally amount) under the store lock
// and returns the previously persisted stage.
func (s *Store) UpdateProposal(_ context.Context, userID, id uuid.UUID, update store.ProposalUpdate) (models.Proposal, models.ProposalStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(userID)
	if err != nil {
		return models.Proposal{}, "", err
	}

	for i, proposal := range doc.Proposals {
		if proposal.ID != id {
			continue
		}

		previous := proposal.Status
		proposal.Status = update.Status
		if update.AmountCents != nil {
			proposal.AmountCents = *update.AmountCents
		}
		proposal.UpdatedAt = now()

		doc.Proposals[i] = proposal
		if err := s.saveDocument(userID, doc); err != nil {
			return models.Proposal{}, "", err
		}

		return proposal, previous, nil
	}

	return models.Proposal{}, "", store.ErrNotFound
}
