package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"example.com/mil-eventos/backend/internal/models"
)

// TestFindConflictMatchesCalendarDay checks that conflicts are detected on the
// calendar date regardless of each value's time zone or clock time.
func TestFindConflictMatchesCalendarDay(t *testing.T) {
	saoPaulo := time.FixedZone("America/Sao_Paulo", -3*60*60)

	events := []models.Event{
		{ID: "a", Title: "Formatura", Date: time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Title: "Aniversário", Date: time.Date(2025, time.December, 6, 22, 30, 0, 0, saoPaulo)},
	}

	candidate := time.Date(2025, time.December, 5, 0, 0, 0, 0, saoPaulo)
	conflict := FindConflict(candidate, events)
	if conflict == nil {
		t.Fatal("expected conflict for matching calendar day across zones")
	}
	if conflict.ID != "a" {
		t.Fatalf("expected event a, got %s", conflict.ID)
	}

	// UTC midnight of 2025-12-06 is 2025-12-05 21:00 in São Paulo. The
	// comparison must stay on each value's own components and report the
	// 2025-12-06 event, not shift into the previous day.
	candidate = time.Date(2025, time.December, 6, 0, 0, 0, 0, time.UTC)
	conflict = FindConflict(candidate, events)
	if conflict == nil || conflict.ID != "b" {
		t.Fatalf("expected event b, got %+v", conflict)
	}
}

// TestFindConflictNoMatch checks the empty result.
func TestFindConflictNoMatch(t *testing.T) {
	events := []models.Event{
		{ID: "a", Date: time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC)},
	}

	if conflict := FindConflict(time.Date(2025, time.December, 7, 0, 0, 0, 0, time.UTC), events); conflict != nil {
		t.Fatalf("expected no conflict, got %s", conflict.ID)
	}
	if conflict := FindConflict(time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC), nil); conflict != nil {
		t.Fatalf("expected no conflict on empty set, got %s", conflict.ID)
	}
}

// TestProjectSchedule checks the shape of the unified calendar: explicit
// events untouched, one synthetic entry per closed proposal, stable ids.
func TestProjectSchedule(t *testing.T) {
	userID := uuid.New()

	events := []models.Event{
		{ID: uuid.New().String(), UserID: userID, Title: "Show Acústico", Date: time.Date(2025, time.November, 10, 0, 0, 0, 0, time.UTC)},
	}

	closed := models.Proposal{
		ID:          uuid.New(),
		UserID:      userID,
		ClientName:  "Alice Santos",
		EventName:   "Casamento Civil",
		AmountCents: 250000,
		EventDate:   time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC),
		Status:      models.ProposalStatusClosed,
	}
	proposals := []models.Proposal{
		closed,
		{ID: uuid.New(), UserID: userID, EventName: "Debutante", Status: models.ProposalStatusAnalysis},
		{ID: uuid.New(), UserID: userID, EventName: "Formatura", Status: models.ProposalStatusLost},
	}

	schedule := ProjectSchedule(events, proposals)
	if len(schedule) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(schedule))
	}
	if schedule[0].Title != "Show Acústico" {
		t.Fatalf("expected explicit event first, got %s", schedule[0].Title)
	}

	derived := schedule[1]
	if derived.ID != DerivedEventID(closed.ID) {
		t.Fatalf("unexpected derived id %s", derived.ID)
	}
	if !strings.HasPrefix(derived.Title, "(Contrato) ") {
		t.Fatalf("expected contract title prefix, got %s", derived.Title)
	}
	if derived.StartTime != "00:00" || derived.EndTime != "23:59" {
		t.Fatalf("expected full-day times, got %s-%s", derived.StartTime, derived.EndTime)
	}
	if derived.ClientName != "Alice Santos" || derived.AmountCents != 250000 {
		t.Fatalf("expected client and amount carried over, got %+v", derived)
	}
	if got := derived.Date.Format("2006-01-02"); got != "2025-11-20" {
		t.Fatalf("expected date 2025-11-20, got %s", got)
	}

	// Projection is pure: a second run yields the same ids.
	again := ProjectSchedule(events, proposals)
	if again[1].ID != derived.ID {
		t.Fatalf("expected stable derived id, got %s then %s", derived.ID, again[1].ID)
	}
}
