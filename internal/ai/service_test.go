package ai

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubClient struct {
	content string
	err     error
}

func (s *stubClient) Chat(_ context.Context, _ []Message) (string, []byte, error) {
	return s.content, nil, s.err
}

func fixedNow() time.Time {
	return time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)
}

// TestExtractProposalFromModelJSON checks the happy path with a JSON reply.
func TestExtractProposalFromModelJSON(t *testing.T) {
	service := NewService(&stubClient{
		content: "```json\n{\"client_name\": \"Carlos Souza\", \"event_name\": \"Casamento\", \"date\": \"2025-08-15\", \"service_type\": \"DJ\"}\n```",
	})
	service.now = fixedNow

	draft, err := service.ExtractProposal(context.Background(), "Olá, sou o Carlos Souza, quero um DJ para meu casamento dia 15/08")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if draft.ClientName != "Carlos Souza" {
		t.Fatalf("expected client Carlos Souza, got %q", draft.ClientName)
	}
	if draft.EventName != "Casamento" {
		t.Fatalf("expected event Casamento, got %q", draft.EventName)
	}
	if draft.Date != "2025-08-15" {
		t.Fatalf("expected date 2025-08-15, got %q", draft.Date)
	}
	if draft.ServiceType != "DJ" {
		t.Fatalf("expected service DJ, got %q", draft.ServiceType)
	}
}

// TestExtractProposalFallsBackOnClientError checks that a failing model is
// replaced by the local heuristics, never an error.
func TestExtractProposalFallsBackOnClientError(t *testing.T) {
	service := NewService(&stubClient{err: errors.New("upstream down")})
	service.now = fixedNow

	draft, err := service.ExtractProposal(context.Background(), "Oi, sou o Carlos, preciso de um dj dia 15/08")
	if err != nil {
		t.Fatalf("expected fallback, got %v", err)
	}

	if draft.ClientName != "Carlos" {
		t.Fatalf("expected client Carlos, got %q", draft.ClientName)
	}
	if draft.ServiceType != "dj" {
		t.Fatalf("expected service dj, got %q", draft.ServiceType)
	}
	if draft.EventName != "Evento de dj" {
		t.Fatalf("expected derived event name, got %q", draft.EventName)
	}
	if draft.Date != "2025-08-15" {
		t.Fatalf("expected current-year date 2025-08-15, got %q", draft.Date)
	}
}

// TestExtractProposalOffline checks the heuristics without any client.
func TestExtractProposalOffline(t *testing.T) {
	service := NewService(nil)
	service.now = fixedNow

	draft, err := service.ExtractProposal(context.Background(), "Fala com a Maria sobre a fotografia do aniversário em 03/12/26")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if draft.ClientName != "Maria" {
		t.Fatalf("expected client Maria, got %q", draft.ClientName)
	}
	if draft.ServiceType != "fotografia" {
		t.Fatalf("expected service fotografia, got %q", draft.ServiceType)
	}
	if draft.Date != "2026-12-03" {
		t.Fatalf("expected date 2026-12-03, got %q", draft.Date)
	}
}

// TestExtractProposalDefaultsDate checks the today default when no date is
// found.
func TestExtractProposalDefaultsDate(t *testing.T) {
	service := NewService(nil)
	service.now = fixedNow

	draft, err := service.ExtractProposal(context.Background(), "Quero um orçamento de decoração")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if draft.Date != "2025-10-01" {
		t.Fatalf("expected today's date, got %q", draft.Date)
	}
}

// TestExtractProposalEmptyText checks input validation.
func TestExtractProposalEmptyText(t *testing.T) {
	service := NewService(nil)

	if _, err := service.ExtractProposal(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty text")
	}
}

// TestGenerateDescriptionOffline checks the deterministic offline text.
func TestGenerateDescriptionOffline(t *testing.T) {
	service := NewService(nil)

	description, err := service.GenerateDescription(context.Background(), "Casamento Civil", "Alice Santos", "DJ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := "Proposta personalizada para Alice Santos referente ao evento Casamento Civil (DJ)."
	if description != want {
		t.Fatalf("expected %q, got %q", want, description)
	}
}

// TestExtractJSON checks fenced and prefixed JSON payloads.
func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```":  `{"a":1}`,
		"Here you go: {\"a\":1}":   `{"a":1}`,
		"{\"a\":1}":                `{"a":1}`,
		"no json at all":           "",
	}

	for input, want := range cases {
		if got := extractJSON(input); got != want {
			t.Fatalf("extractJSON(%q) = %q, want %q", input, got, want)
		}
	}
}
