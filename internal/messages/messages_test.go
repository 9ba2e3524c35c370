package messages

import (
	"strings"
	"testing"
	"time"

	"example.com/mil-eventos/backend/internal/models"
)

// TestReviewFillsPlaceholders checks placeholder substitution with a custom
// template.
func TestReviewFillsPlaceholders(t *testing.T) {
	templates := models.MessageTemplates{Review: "Oi {cliente}, obrigado pelo {evento}!"}
	event := models.Event{ClientName: "Alice Santos", Title: "Casamento Civil"}

	got := Review(templates, event)
	want := "Oi Alice, obrigado pelo Casamento Civil!"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

// TestReviewDefaultTemplate checks the fallback when no template is set.
func TestReviewDefaultTemplate(t *testing.T) {
	event := models.Event{ClientName: "Bruno Lima", Title: "Debutante"}

	got := Review(models.MessageTemplates{}, event)
	if !strings.Contains(got, "Bruno") {
		t.Fatalf("expected first name in message, got %q", got)
	}
	if !strings.Contains(got, "Debutante") {
		t.Fatalf("expected event title in message, got %q", got)
	}
}

// TestTimelineRendersItems checks the timeline block and date formatting.
func TestTimelineRendersItems(t *testing.T) {
	event := models.Event{
		ClientName: "Alice Santos",
		Title:      "Casamento Civil",
		Date:       time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC),
		Timeline: []models.TimelineItem{
			{Time: "18:00", Title: "Cerimônia", Description: "Chegada dos convidados"},
			{Time: "20:00", Title: "Festa"},
		},
	}

	got := Timeline(models.MessageTemplates{}, event)
	if !strings.Contains(got, "20/11/2025") {
		t.Fatalf("expected pt-BR date, got %q", got)
	}
	if !strings.Contains(got, "🕒 *18:00* - Cerimônia") {
		t.Fatalf("expected first timeline item, got %q", got)
	}
	if !strings.Contains(got, "_Chegada dos convidados_") {
		t.Fatalf("expected item description, got %q", got)
	}
}

// TestTimelineEmpty checks the placeholder text for an empty timeline.
func TestTimelineEmpty(t *testing.T) {
	got := Timeline(models.MessageTemplates{}, models.Event{Title: "Festa"})
	if !strings.Contains(got, "Sem itens") {
		t.Fatalf("expected empty timeline marker, got %q", got)
	}
}

// TestServiceOrder checks the fixed work order format and its fallbacks.
func TestServiceOrder(t *testing.T) {
	event := models.Event{
		Title: "Formatura",
		Date:  time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC),
		Checklist: []models.ChecklistItem{
			{Text: "Montar som", Done: true},
			{Text: "Testar luz"},
		},
	}

	got := ServiceOrder(event)
	if !strings.Contains(got, "ORDEM DE SERVIÇO - Formatura") {
		t.Fatalf("expected header, got %q", got)
	}
	if !strings.Contains(got, "A definir") {
		t.Fatalf("expected location fallback, got %q", got)
	}
	if !strings.Contains(got, "- [x] Montar som") || !strings.Contains(got, "- [ ] Testar luz") {
		t.Fatalf("expected checklist marks, got %q", got)
	}
}

// TestProposalLink checks the proposal message and the share URL encoding.
func TestProposalLink(t *testing.T) {
	templates := models.MessageTemplates{Proposal: "Proposta para {cliente}: {link}"}

	message := Proposal(templates, "Alice Santos", "Casamento", "https://example.com/p/1")
	if message != "Proposta para Alice: https://example.com/p/1" {
		t.Fatalf("unexpected message %q", message)
	}

	shareURL := WhatsAppURL("olá mundo")
	if !strings.HasPrefix(shareURL, "https://wa.me/?text=") {
		t.Fatalf("unexpected url %q", shareURL)
	}
	if strings.Contains(shareURL, " ") {
		t.Fatalf("expected encoded spaces, got %q", shareURL)
	}
}

// TestFirstNameFallback checks the empty client name fallback.
func TestFirstNameFallback(t *testing.T) {
	got := Review(models.MessageTemplates{Review: "{cliente}"}, models.Event{})
	if got != "Cliente" {
		t.Fatalf("expected fallback name, got %q", got)
	}
}
