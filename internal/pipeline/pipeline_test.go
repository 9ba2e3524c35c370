package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/notifications"
	"example.com/mil-eventos/backend/internal/store"
	"example.com/mil-eventos/backend/internal/store/local"
)

func newTestPipeline(t *testing.T) (*Pipeline, store.Store, uuid.UUID) {
	t.Helper()

	st, err := local.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open local store: %v", err)
	}

	p := New(st, notifications.NewHub(), nil)
	p.now = func() time.Time {
		return time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)
	}

	return p, st, uuid.New()
}

// TestCreateProposalForcesSentStage checks that the caller cannot choose the
// initial stage.
func TestCreateProposalForcesSentStage(t *testing.T) {
	p, _, userID := newTestPipeline(t)

	result, err := p.CreateProposal(context.Background(), userID, CreateInput{
		ClientName:  "Alice Santos",
		EventName:   "Casamento Civil",
		AmountCents: 250000,
		EventDate:   "2025-11-20",
		Status:      models.ProposalStatusClosed,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Proposal.Status != models.ProposalStatusSent {
		t.Fatalf("expected stage sent, got %s", result.Proposal.Status)
	}
	if result.Conflict != nil {
		t.Fatalf("expected no conflict, got %s", result.Conflict.ID)
	}
}

// TestCreateProposalValidation checks that invalid input is rejected before
// anything is persisted.
func TestCreateProposalValidation(t *testing.T) {
	p, st, userID := newTestPipeline(t)

	cases := []CreateInput{
		{ClientName: "", EventName: "Festa", AmountCents: 100, EventDate: "2025-11-20"},
		{ClientName: "Alice", EventName: "  ", AmountCents: 100, EventDate: "2025-11-20"},
		{ClientName: "Alice", EventName: "Festa", AmountCents: 0, EventDate: "2025-11-20"},
		{ClientName: "Alice", EventName: "Festa", AmountCents: -5, EventDate: "2025-11-20"},
		{ClientName: "Alice", EventName: "Festa", AmountCents: 100, EventDate: "20/11/2025"},
	}

	for _, input := range cases {
		_, err := p.CreateProposal(context.Background(), userID, input)

		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected validation error for %+v, got %v", input, err)
		}
	}

	proposals, err := st.ListProposals(context.Background(), userID)
	if err != nil {
		t.Fatalf("list proposals: %v", err)
	}
	if len(proposals) != 0 {
		t.Fatalf("expected no persisted proposals, got %d", len(proposals))
	}

	clients, err := st.ListClients(context.Background(), userID)
	if err != nil {
		t.Fatalf("list clients: %v", err)
	}
	if len(clients) != 0 {
		t.Fatalf("expected no persisted clients, got %d", len(clients))
	}
}

// TestCreateProposalEnsuresClient checks the implicit client creation and its
// case-insensitive match against existing clients.
func TestCreateProposalEnsuresClient(t *testing.T) {
	p, st, userID := newTestPipeline(t)
	ctx := context.Background()

	if _, err := p.CreateProposal(ctx, userID, CreateInput{
		ClientName: "Alice Santos", EventName: "Casamento", AmountCents: 100, EventDate: "2025-11-20",
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	if _, err := p.CreateProposal(ctx, userID, CreateInput{
		ClientName: "ALICE SANTOS", EventName: "Aniversário", AmountCents: 200, EventDate: "2025-12-01",
	}); err != nil {
		t.Fatalf("second create: %v", err)
	}

	clients, err := st.ListClients(ctx, userID)
	if err != nil {
		t.Fatalf("list clients: %v", err)
	}
	if len(clients) != 1 {
		t.Fatalf("expected one client record, got %d", len(clients))
	}
	if clients[0].Name != "Alice Santos" {
		t.Fatalf("unexpected client name %s", clients[0].Name)
	}
}

// TestCreateProposalConflictAdvisory checks that a date collision surfaces an
// advisory without blocking creation.
func TestCreateProposalConflictAdvisory(t *testing.T) {
	p, st, userID := newTestPipeline(t)
	ctx := context.Background()

	for _, title := range []string{"Formatura Medicina", "Casamento Julia"} {
		_, err := st.InsertEvent(ctx, models.Event{
			UserID:     userID,
			Title:      title,
			Date:       time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC),
			Type:       models.EventTypeDJ,
			ClientName: "Cliente",
		})
		if err != nil {
			t.Fatalf("insert event: %v", err)
		}
	}

	result, err := p.CreateProposal(ctx, userID, CreateInput{
		ClientName: "Bruno Lima", EventName: "Debutante", AmountCents: 180000, EventDate: "2025-12-05",
	})
	if err != nil {
		t.Fatalf("expected proposal to be created, got %v", err)
	}

	if result.Conflict == nil {
		t.Fatal("expected a conflict advisory")
	}
	if result.Conflict.Title != "Formatura Medicina" && result.Conflict.Title != "Casamento Julia" {
		t.Fatalf("advisory references unknown event %s", result.Conflict.Title)
	}

	proposals, err := st.ListProposals(ctx, userID)
	if err != nil {
		t.Fatalf("list proposals: %v", err)
	}
	if len(proposals) != 1 {
		t.Fatalf("expected the proposal to be persisted, got %d", len(proposals))
	}
}

// TestUpdateStageGeneratesReceivableOnce checks the edge-triggered receivable
// rule: once per entry into closed, never for a repeat.
func TestUpdateStageGeneratesReceivableOnce(t *testing.T) {
	p, st, userID := newTestPipeline(t)
	ctx := context.Background()

	result, err := p.CreateProposal(ctx, userID, CreateInput{
		ClientName: "Alice Santos", EventName: "Casamento Civil", AmountCents: 250000, EventDate: "2025-11-20",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	proposalID := result.Proposal.ID

	updated, receivable, err := p.UpdateStage(ctx, userID, proposalID, models.ProposalStatusClosed, nil)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if updated.Status != models.ProposalStatusClosed {
		t.Fatalf("expected closed, got %s", updated.Status)
	}
	if receivable == nil {
		t.Fatal("expected a generated receivable")
	}
	if receivable.AmountCents != 250000 {
		t.Fatalf("expected amount 250000, got %d", receivable.AmountCents)
	}
	if receivable.Status != models.TransactionStatusPending {
		t.Fatalf("expected pending, got %s", receivable.Status)
	}
	if receivable.Type != models.TransactionTypeIncome {
		t.Fatalf("expected income, got %s", receivable.Type)
	}
	if receivable.ProposalID == nil || *receivable.ProposalID != proposalID {
		t.Fatal("expected back-reference to the proposal")
	}
	if got := receivable.Date.Format("2006-01-02"); got != "2025-10-01" {
		t.Fatalf("expected receivable dated today, got %s", got)
	}

	// Re-closing an already closed proposal must not generate again.
	_, receivable, err = p.UpdateStage(ctx, userID, proposalID, models.ProposalStatusClosed, nil)
	if err != nil {
		t.Fatalf("re-close: %v", err)
	}
	if receivable != nil {
		t.Fatal("expected no second receivable on repeat close")
	}

	transactions, err := st.ListTransactions(ctx, userID)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected exactly one transaction, got %d", len(transactions))
	}

	// Leaving closed and entering again is a fresh edge and generates again.
	if _, _, err := p.UpdateStage(ctx, userID, proposalID, models.ProposalStatusAnalysis, nil); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, receivable, err = p.UpdateStage(ctx, userID, proposalID, models.ProposalStatusClosed, nil); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if receivable == nil {
		t.Fatal("expected a receivable for the second closed edge")
	}

	transactions, err = st.ListTransactions(ctx, userID)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("expected two transactions, got %d", len(transactions))
	}
}

// TestUpdateStageRejectsUnknownStage checks stage validation.
func TestUpdateStageRejectsUnknownStage(t *testing.T) {
	p, _, userID := newTestPipeline(t)

	_, _, err := p.UpdateStage(context.Background(), userID, uuid.New(), "archived", nil)

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// TestUpdateStageRevisesAmount checks that an amount revision rides along
// with the stage change.
func TestUpdateStageRevisesAmount(t *testing.T) {
	p, _, userID := newTestPipeline(t)
	ctx := context.Background()

	result, err := p.CreateProposal(ctx, userID, CreateInput{
		ClientName: "Bruno Lima", EventName: "Debutante", AmountCents: 180000, EventDate: "2025-12-05",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	revised := int64(200000)
	updated, receivable, err := p.UpdateStage(ctx, userID, result.Proposal.ID, models.ProposalStatusClosed, &revised)
	if err != nil {
		t.Fatalf("close: %v", err)
	}

	if updated.AmountCents != revised {
		t.Fatalf("expected amount %d, got %d", revised, updated.AmountCents)
	}
	if receivable == nil || receivable.AmountCents != revised {
		t.Fatal("expected the receivable to carry the revised amount")
	}
}

// TestUpdateStageUnknownProposal checks the not-found path.
func TestUpdateStageUnknownProposal(t *testing.T) {
	p, _, userID := newTestPipeline(t)

	_, _, err := p.UpdateStage(context.Background(), userID, uuid.New(), models.ProposalStatusClosed, nil)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

// TestProposalLifecycle walks a proposal from creation through closing and
// checks the receivable and the derived calendar entry.
func TestProposalLifecycle(t *testing.T) {
	p, st, userID := newTestPipeline(t)
	ctx := context.Background()

	result, err := p.CreateProposal(ctx, userID, CreateInput{
		ClientName: "Alice Santos", EventName: "Casamento Civil", AmountCents: 250000, EventDate: "2025-11-20",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, _, err := p.UpdateStage(ctx, userID, result.Proposal.ID, models.ProposalStatusClosing, nil); err != nil {
		t.Fatalf("move to closing: %v", err)
	}
	if _, _, err := p.UpdateStage(ctx, userID, result.Proposal.ID, models.ProposalStatusClosed, nil); err != nil {
		t.Fatalf("close: %v", err)
	}

	transactions, err := st.ListTransactions(ctx, userID)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected one transaction, got %d", len(transactions))
	}
	if transactions[0].AmountCents != 250000 || transactions[0].Status != models.TransactionStatusPending || transactions[0].Type != models.TransactionTypeIncome {
		t.Fatalf("unexpected transaction %+v", transactions[0])
	}

	events, err := st.ListEvents(ctx, userID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	proposals, err := st.ListProposals(ctx, userID)
	if err != nil {
		t.Fatalf("list proposals: %v", err)
	}

	schedule := ProjectSchedule(events, proposals)
	if len(schedule) != 1 {
		t.Fatalf("expected one derived event, got %d", len(schedule))
	}

	derived := schedule[0]
	if derived.ID != DerivedEventID(result.Proposal.ID) {
		t.Fatalf("unexpected derived id %s", derived.ID)
	}
	if got := derived.Date.Format("2006-01-02"); got != "2025-11-20" {
		t.Fatalf("expected derived event on 2025-11-20, got %s", got)
	}
	if derived.AmountCents != 250000 {
		t.Fatalf("expected derived amount 250000, got %d", derived.AmountCents)
	}
}
