package pipeline

import (
	"time"

	"github.com/google/uuid"

	"example.com/mil-eventos/backend/internal/models"
)

const (
	derivedIDPrefix    = "prop-"
	derivedTitlePrefix = "(Contrato) "

	derivedStartTime = "00:00"
	derivedEndTime   = "23:59"
)

// DerivedEventID is the stable id of the calendar event synthesized from a
// closed proposal. It is a pure function of the proposal id, so repeated
// projections never produce duplicates.
func DerivedEventID(proposalID uuid.UUID) string {
	return derivedIDPrefix + proposalID.String()
}

// FindConflict returns the first event sharing the candidate's calendar date,
// or nil. Dates are compared on their own (year, month, day) components, never
// on the underlying instant, so a date built at UTC midnight and one built at
// local midnight for the same day always match.
func FindConflict(candidate time.Time, events []models.Event) *models.Event {
	for i := range events {
		if sameCalendarDay(candidate, events[i].Date) {
			conflict := events[i]
			return &conflict
		}
	}

	return nil
}

// ProjectSchedule is the unified calendar view: all explicit events followed
// by one synthetic full-day event per closed proposal. It is recomputed on
// every call; derived events are never stored. No de-duplication is attempted
// against explicit events on the same date, they are distinct entries.
func ProjectSchedule(events []models.Event, proposals []models.Proposal) []models.Event {
	schedule := make([]models.Event, 0, len(events)+len(proposals))
	schedule = append(schedule, events...)

	for _, proposal := range proposals {
		if proposal.Status != models.ProposalStatusClosed {
			continue
		}

		year, month, day := proposal.EventDate.Date()
		schedule = append(schedule, models.Event{
			ID:          DerivedEventID(proposal.ID),
			UserID:      proposal.UserID,
			Title:       derivedTitlePrefix + proposal.EventName,
			Date:        time.Date(year, month, day, 0, 0, 0, 0, time.Local),
			Type:        models.EventTypeOther,
			ClientName:  proposal.ClientName,
			StartTime:   derivedStartTime,
			EndTime:     derivedEndTime,
			AmountCents: proposal.AmountCents,
		})
	}

	return schedule
}

func sameCalendarDay(a, b time.Time) bool {
	aYear, aMonth, aDay := a.Date()
	bYear, bMonth, bDay := b.Date()
	return aYear == bYear && aMonth == bMonth && aDay == bDay
}
