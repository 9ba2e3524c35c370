// Package pipeline implements the proposal lifecycle: stage transitions,
// the receivable auto-generated when a proposal closes, the date-conflict
// advisory, the unified schedule projection and the financial KPIs.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/notifications"
	"example.com/mil-eventos/backend/internal/store"
)

const dateLayout = "2006-01-02"

// CategoryService labels transactions generated from closed proposals.
const CategoryService = "service"

// ValidationError reports a rejected field before anything is persisted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

type Pipeline struct {
	store  store.Store
	hub    *notifications.Hub
	logger *slog.Logger
	now    func() time.Time
}

// New creates the pipeline over a store backend.
func New(st store.Store, hub *notifications.Hub, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		store:  st,
		hub:    hub,
		logger: logger,
		now:    time.Now,
	}
}

// CreateInput carries the fields of a new proposal. Status is accepted for
// shape compatibility with drafts but is always overridden to "sent".
type CreateInput struct {
	ClientName  string
	EventName   string
	AmountCents int64
	EventDate   string
	Status      models.ProposalStatus
}

// CreateResult is the created proposal plus an optional conflict advisory:
// the first already-scheduled event sharing the proposal's calendar date.
// The advisory never blocks creation.
type CreateResult struct {
	Proposal models.Proposal
	Conflict *models.Event
}

// CreateProposal validates the input, makes sure a client record exists for
// the client name, and persists the proposal in the "sent" stage.
//
// The ensure-client step and the proposal insert are two independent writes;
// a failure between them can leave a client without a proposal. The link is
// by name match, not by foreign key, so the orphan is harmless.
func (p *Pipeline) CreateProposal(ctx context.Context, userID uuid.UUID, input CreateInput) (CreateResult, error) {
	clientName := strings.TrimSpace(input.ClientName)
	eventName := strings.TrimSpace(input.EventName)

	if clientName == "" {
		return CreateResult{}, invalid("client_name", "is required")
	}
	if eventName == "" {
		return CreateResult{}, invalid("event_name", "is required")
	}
	if input.AmountCents <= 0 {
		return CreateResult{}, invalid("amount_cents", "must be positive")
	}

	eventDate, err := time.Parse(dateLayout, strings.TrimSpace(input.EventDate))
	if err != nil {
		return CreateResult{}, invalid("event_date", "must be a date in YYYY-MM-DD format")
	}

	if err := p.ensureClient(ctx, userID, clientName); err != nil {
		return CreateResult{}, fmt.Errorf("ensure client: %w", err)
	}

	conflict, err := p.findScheduleConflict(ctx, userID, eventDate)
	if err != nil {
		return CreateResult{}, err
	}

	proposal := models.Proposal{
		UserID:      userID,
		ClientName:  clientName,
		EventName:   eventName,
		AmountCents: input.AmountCents,
		EventDate:   eventDate,
		Status:      models.ProposalStatusSent,
	}

	created, err := p.store.InsertProposal(ctx, proposal)
	if err != nil {
		return CreateResult{}, fmt.Errorf("insert proposal: %w", err)
	}

	p.publish(userID, notifications.EventProposalCreated, created)

	return CreateResult{Proposal: created, Conflict: conflict}, nil
}

// UpdateStage replaces the proposal's stage (and optionally revises the
// amount). When the persisted stage moves onto "closed" from any other stage,
// exactly one pending income transaction is generated; repeating the call on
// an already closed proposal generates nothing. Leaving "closed" and entering
// it again generates again.
func (p *Pipeline) UpdateStage(ctx context.Context, userID, proposalID uuid.UUID, newStage models.ProposalStatus, amountCents *int64) (models.Proposal, *models.Transaction, error) {
	if !models.ValidProposalStatus(newStage) {
		return models.Proposal{}, nil, invalid("status", "is not a pipeline stage")
	}
	if amountCents != nil && *amountCents <= 0 {
		return models.Proposal{}, nil, invalid("amount_cents", "must be positive")
	}

	updated, previous, err := p.store.UpdateProposal(ctx, userID, proposalID, store.ProposalUpdate{
		Status:      newStage,
		AmountCents: amountCents,
	})
	if err != nil {
		return models.Proposal{}, nil, err
	}

	p.publish(userID, notifications.EventProposalUpdated, updated)

	if updated.Status != models.ProposalStatusClosed || previous == models.ProposalStatusClosed {
		return updated, nil, nil
	}

	receivable, err := p.store.InsertTransaction(ctx, p.receivableFor(updated))
	if err != nil {
		// The stage change is already persisted; the caller gets the error
		// and retries the receivable, not the transition.
		p.logger.Error("receivable generation failed",
			slog.String("proposal_id", updated.ID.String()),
			slog.String("error", err.Error()))
		return updated, nil, fmt.Errorf("generate receivable: %w", err)
	}

	p.publish(userID, notifications.EventTransactionCreated, receivable)

	return updated, &receivable, nil
}

// receivableFor derives the transaction emitted when a proposal closes:
// pending income for the proposal's amount, dated today.
func (p *Pipeline) receivableFor(proposal models.Proposal) models.Transaction {
	today := p.now()
	year, month, day := today.Date()

	return models.Transaction{
		UserID:      proposal.UserID,
		Description: "Contrato - " + proposal.EventName,
		ClientName:  proposal.ClientName,
		Category:    CategoryService,
		AmountCents: proposal.AmountCents,
		Date:        time.Date(year, month, day, 0, 0, 0, 0, today.Location()),
		Status:      models.TransactionStatusPending,
		Type:        models.TransactionTypeIncome,
		ProposalID:  &proposal.ID,
	}
}

// ensureClient creates a minimal client record when no existing client
// matches the name case-insensitively.
func (p *Pipeline) ensureClient(ctx context.Context, userID uuid.UUID, clientName string) error {
	_, err := p.store.FindClientByName(ctx, userID, clientName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	_, err = p.store.InsertClient(ctx, models.Client{UserID: userID, Name: clientName})
	return err
}

// findScheduleConflict checks the candidate date against the projected
// schedule, derived contract events included.
func (p *Pipeline) findScheduleConflict(ctx context.Context, userID uuid.UUID, date time.Time) (*models.Event, error) {
	events, err := p.store.ListEvents(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	proposals, err := p.store.ListProposals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}

	return FindConflict(date, ProjectSchedule(events, proposals)), nil
}

func (p *Pipeline) publish(userID uuid.UUID, eventType string, data any) {
	if p.hub == nil {
		return
	}
	p.hub.Publish(userID, notifications.Event{Type: eventType, Data: data})
}
