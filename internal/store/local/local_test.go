package local

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/store"
)

// TestDataSurvivesReopen checks that documents persist across store
// instances on the same directory.
func TestDataSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	user, err := first.CreateUser(ctx, "alice@example.com", "hash", nil)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	proposal, err := first.InsertProposal(ctx, models.Proposal{
		UserID:      user.ID,
		ClientName:  "Alice Santos",
		EventName:   "Casamento Civil",
		AmountCents: 250000,
		EventDate:   time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC),
		Status:      models.ProposalStatusSent,
	})
	if err != nil {
		t.Fatalf("insert proposal: %v", err)
	}
	first.Close()

	second, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	loaded, err := second.GetProposal(ctx, user.ID, proposal.ID)
	if err != nil {
		t.Fatalf("get proposal after reopen: %v", err)
	}
	if loaded.EventName != "Casamento Civil" || loaded.Status != models.ProposalStatusSent {
		t.Fatalf("unexpected proposal %+v", loaded)
	}

	if _, err := second.GetUserByEmail(ctx, "alice@example.com"); err != nil {
		t.Fatalf("get user after reopen: %v", err)
	}
}

// TestCreateUserConflict checks the duplicate email error.
func TestCreateUserConflict(t *testing.T) {
	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()

	if _, err := st.CreateUser(ctx, "alice@example.com", "hash", nil); err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, err := st.CreateUser(ctx, "alice@example.com", "other", nil); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

// TestUpdateProposalReturnsPreviousStage checks the previous-stage report
// used for transition detection.
func TestUpdateProposalReturnsPreviousStage(t *testing.T) {
	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	userID := uuid.New()

	proposal, err := st.InsertProposal(ctx, models.Proposal{
		UserID:      userID,
		ClientName:  "Bruno Lima",
		EventName:   "Debutante",
		AmountCents: 180000,
		EventDate:   time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC),
		Status:      models.ProposalStatusSent,
	})
	if err != nil {
		t.Fatalf("insert proposal: %v", err)
	}

	updated, previous, err := st.UpdateProposal(ctx, userID, proposal.ID, store.ProposalUpdate{Status: models.ProposalStatusClosed})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if previous != models.ProposalStatusSent {
		t.Fatalf("expected previous sent, got %s", previous)
	}
	if updated.Status != models.ProposalStatusClosed {
		t.Fatalf("expected closed, got %s", updated.Status)
	}

	_, previous, err = st.UpdateProposal(ctx, userID, proposal.ID, store.ProposalUpdate{Status: models.ProposalStatusClosed})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if previous != models.ProposalStatusClosed {
		t.Fatalf("expected previous closed, got %s", previous)
	}

	if _, _, err := st.UpdateProposal(ctx, userID, uuid.New(), store.ProposalUpdate{Status: models.ProposalStatusLost}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

// TestMarkOverdueTransactions checks the sweep over all account documents.
func TestMarkOverdueTransactions(t *testing.T) {
	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	userID := uuid.New()

	insert := func(date time.Time, status models.TransactionStatus, transactionType models.TransactionType) models.Transaction {
		t.Helper()
		transaction, err := st.InsertTransaction(ctx, models.Transaction{
			UserID:      userID,
			Description: "tx",
			AmountCents: 1000,
			Date:        date,
			Status:      status,
			Type:        transactionType,
		})
		if err != nil {
			t.Fatalf("insert transaction: %v", err)
		}
		return transaction
	}

	cutoff := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	stale := insert(cutoff.AddDate(0, 0, -3), models.TransactionStatusPending, models.TransactionTypeIncome)
	insert(cutoff.AddDate(0, 0, 2), models.TransactionStatusPending, models.TransactionTypeIncome)
	insert(cutoff.AddDate(0, 0, -3), models.TransactionStatusPaid, models.TransactionTypeIncome)

	marked, err := st.MarkOverdueTransactions(ctx, cutoff)
	if err != nil {
		t.Fatalf("mark overdue: %v", err)
	}
	if marked != 1 {
		t.Fatalf("expected 1 marked, got %d", marked)
	}

	transactions, err := st.ListTransactions(ctx, userID)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	for _, transaction := range transactions {
		if transaction.ID == stale.ID && transaction.Status != models.TransactionStatusOverdue {
			t.Fatalf("expected stale transaction to be overdue, got %s", transaction.Status)
		}
	}
}

// TestEventChecklistRoundTrip checks nested collections in the document.
func TestEventChecklistRoundTrip(t *testing.T) {
	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	userID := uuid.New()

	event, err := st.InsertEvent(ctx, models.Event{
		UserID: userID,
		Title:  "Formatura",
		Date:   time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC),
		Type:   models.EventTypeDJ,
	})
	if err != nil {
		t.Fatalf("insert event: %v", err)
	}

	event.Checklist = append(event.Checklist, models.ChecklistItem{ID: "1", Text: "Montar som", Done: true})
	if _, err := st.UpdateEvent(ctx, event); err != nil {
		t.Fatalf("update event: %v", err)
	}

	loaded, err := st.GetEvent(ctx, userID, event.ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if len(loaded.Checklist) != 1 || !loaded.Checklist[0].Done {
		t.Fatalf("unexpected checklist %+v", loaded.Checklist)
	}
}
