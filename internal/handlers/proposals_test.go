package handlers

import (
	"testing"
	"time"

	"example.com/mil-eventos/backend/internal/models"
)

// TestParseMonthValid checks parsing of a YYYY-MM month filter.
func TestParseMonthValid(t *testing.T) {
	month, err := parseMonth("2025-11")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if month.Year() != 2025 || month.Month() != time.November {
		t.Fatalf("unexpected month: %s", month)
	}
}

// TestParseMonthInvalid checks rejected month formats.
func TestParseMonthInvalid(t *testing.T) {
	for _, raw := range []string{"2025", "11/2025", "2025-13", "novembro"} {
		if _, err := parseMonth(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

// TestFilterProposalsByMonth checks the event-date month filter.
func TestFilterProposalsByMonth(t *testing.T) {
	proposals := []models.Proposal{
		{EventName: "Casamento", EventDate: time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC)},
		{EventName: "Debutante", EventDate: time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC)},
		{EventName: "Aniversário", EventDate: time.Date(2024, time.November, 2, 0, 0, 0, 0, time.UTC)},
	}

	month, err := parseMonth("2025-11")
	if err != nil {
		t.Fatalf("parse month: %v", err)
	}

	filtered := filterProposalsByMonth(proposals, month)
	if len(filtered) != 1 {
		t.Fatalf("expected 1 proposal, got %d", len(filtered))
	}
	if filtered[0].EventName != "Casamento" {
		t.Fatalf("unexpected proposal %s", filtered[0].EventName)
	}
}

// TestFilterTransactions checks the generic predicate filter.
func TestFilterTransactions(t *testing.T) {
	transactions := []models.Transaction{
		{Description: "a", Status: models.TransactionStatusPaid},
		{Description: "b", Status: models.TransactionStatusPending},
	}

	filtered := filterTransactions(transactions, func(t models.Transaction) bool {
		return t.Status == models.TransactionStatusPaid
	})

	if len(filtered) != 1 || filtered[0].Description != "a" {
		t.Fatalf("unexpected result %+v", filtered)
	}
}
