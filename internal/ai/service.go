package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ProposalDraft is the structured result of extracting a proposal from free
// text, such as a pasted WhatsApp message. Fields the text does not mention
// stay empty except for the date, which defaults to today.
type ProposalDraft struct {
	ClientName  string `json:"client_name"`
	EventName   string `json:"event_name"`
	Date        string `json:"date"`
	ServiceType string `json:"service_type"`
}

type Service struct {
	client Client
	now    func() time.Time
}

// NewService creates the extraction service. A nil client keeps the service
// fully offline on the local heuristics.
func NewService(client Client) *Service {
	return &Service{client: client, now: time.Now}
}

// ExtractProposal pulls client name, event name, date and service type out of
// free text. The AI path asks for JSON and validates it; any failure falls
// back to the regex heuristics, so the call never errors on bad model output.
func (s *Service) ExtractProposal(ctx context.Context, text string) (ProposalDraft, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ProposalDraft{}, errors.New("text is empty")
	}

	if s.client == nil {
		return s.extractLocally(text), nil
	}

	messages := []Message{
		{Role: "system", Content: "You extract event booking details from Brazilian Portuguese messages. Respond with JSON only, without extra text."},
		{Role: "user", Content: buildExtractPrompt(text, s.now())},
	}

	content, _, err := s.client.Chat(ctx, messages)
	if err != nil {
		return s.extractLocally(text), nil
	}

	var draft ProposalDraft
	if err := parseJSON(content, &draft); err != nil {
		return s.extractLocally(text), nil
	}

	s.normalizeDraft(&draft)
	return draft, nil
}

// GenerateDescription writes a short proposal description for the client and
// event. Without an AI client it returns a deterministic offline text.
func (s *Service) GenerateDescription(ctx context.Context, eventName, clientName, serviceType string) (string, error) {
	eventName = strings.TrimSpace(eventName)
	clientName = strings.TrimSpace(clientName)
	if eventName == "" || clientName == "" {
		return "", errors.New("event name and client name are required")
	}

	if s.client == nil {
		return fmt.Sprintf("Proposta personalizada para %s referente ao evento %s (%s).", clientName, eventName, serviceType), nil
	}

	prompt := fmt.Sprintf(`Crie uma breve descrição profissional e amigável para uma proposta de evento. A proposta é para o cliente %q para o evento %q. O serviço principal é %q. Foque em transmitir profissionalismo e entusiasmo. Responda em português do Brasil, sem formatação.`, clientName, eventName, serviceType)

	content, _, err := s.client.Chat(ctx, []Message{{Role: "user", Content: prompt}})
	if err != nil {
		return "", err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", errors.New("ai response is empty")
	}

	return content, nil
}

func buildExtractPrompt(text string, now time.Time) string {
	return fmt.Sprintf(`Extract the following fields from the message below: the client's name, the event name (e.g. Casamento, Aniversário), the date and the service type (DJ, Fotografia, Decoração, ...).

Requirements:
- Output JSON only, no code fences, no extra text.
- Schema: {"client_name": string, "event_name": string, "date": string, "service_type": string}
- Date format is YYYY-MM-DD; assume the current year (%d) when the message omits it.
- Leave a field empty when the message does not mention it.

Message:
%s`, now.Year(), text)
}

var (
	clientNamePattern  = regexp.MustCompile(`(?i:sou|chamo|aqui é|fala com)\s+(?:[oa]\s+)?(\p{Lu}\p{Ll}+)`)
	serviceTypePattern = regexp.MustCompile(`(?i)(dj|fotografia|decoração|iluminação|som|banda|casamento|15 anos)`)
	datePattern        = regexp.MustCompile(`(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?`)
)

// extractLocally is the offline heuristic: a name after a self-introduction,
// the first known service keyword, and the first DD/MM date.
func (s *Service) extractLocally(text string) ProposalDraft {
	draft := ProposalDraft{EventName: "Novo Evento"}

	if match := clientNamePattern.FindStringSubmatch(text); match != nil {
		draft.ClientName = match[1]
	}

	if match := serviceTypePattern.FindStringSubmatch(text); match != nil {
		draft.ServiceType = strings.ToLower(match[1])
		draft.EventName = "Evento de " + draft.ServiceType
	}

	if match := datePattern.FindStringSubmatch(text); match != nil {
		day, _ := strconv.Atoi(match[1])
		month, _ := strconv.Atoi(match[2])
		year := s.now().Year()
		if match[3] != "" {
			parsed, _ := strconv.Atoi(match[3])
			if len(match[3]) == 2 {
				parsed += 2000
			}
			year = parsed
		}
		draft.Date = fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	}

	s.normalizeDraft(&draft)
	return draft
}

// normalizeDraft trims the fields and guarantees a parseable date.
func (s *Service) normalizeDraft(draft *ProposalDraft) {
	draft.ClientName = strings.TrimSpace(draft.ClientName)
	draft.EventName = strings.TrimSpace(draft.EventName)
	draft.ServiceType = strings.TrimSpace(draft.ServiceType)

	draft.Date = strings.TrimSpace(draft.Date)
	if _, err := time.Parse(dateLayout, draft.Date); err != nil {
		draft.Date = s.now().Format(dateLayout)
	}
}

func parseJSON(input string, target interface{}) error {
	payload := extractJSON(input)
	if payload == "" {
		return errors.New("ai response does not contain json")
	}

	return json.Unmarshal([]byte(payload), target)
}

func extractJSON(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimPrefix(strings.TrimSpace(trimmed), "json")
		trimmed = strings.TrimSpace(trimmed)
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}

	return trimmed[start : end+1]
}
