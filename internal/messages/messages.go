// Package messages renders the WhatsApp texts shared from the dashboard:
// proposal links, review requests, event timelines and service orders.
// Templates come from the business profile; empty templates fall back to the
// built-in pt-BR defaults.
package messages

import (
	"fmt"
	"net/url"
	"strings"

	"example.com/mil-eventos/backend/internal/models"
)

const dateLayout = "02/01/2006"

const (
	defaultProposal = "Olá {cliente}! 👋\n\nSegue a proposta para o evento *{evento}*: {link}\n\nQualquer dúvida estou à disposição!"
	defaultReview   = "Olá {cliente}! 👋\n\nEspero que tenha gostado do meu trabalho no evento *{evento}*! Foi um prazer participar desse momento.\n\nVocê poderia me deixar uma avaliação? Isso me ajuda muito a continuar crescendo! ⭐⭐⭐⭐⭐\n\nObrigado!"
	defaultTimeline = "*CRONOGRAMA - {evento}*\n📅 Data: {data}\n\n{cronograma}\n\nGerado por Mil Eventos"
)

// Proposal renders the message sent when sharing a proposal link.
func Proposal(templates models.MessageTemplates, clientName, eventName, link string) string {
	template := templates.Proposal
	if strings.TrimSpace(template) == "" {
		template = defaultProposal
	}

	return strings.NewReplacer(
		"{cliente}", firstName(clientName),
		"{evento}", eventName,
		"{link}", link,
	).Replace(template)
}

// Review renders the post-event review request.
func Review(templates models.MessageTemplates, event models.Event) string {
	template := templates.Review
	if strings.TrimSpace(template) == "" {
		template = defaultReview
	}

	return strings.NewReplacer(
		"{cliente}", firstName(event.ClientName),
		"{evento}", event.Title,
	).Replace(template)
}

// Timeline renders the event timeline for sharing with the client.
func Timeline(templates models.MessageTemplates, event models.Event) string {
	template := templates.Timeline
	if strings.TrimSpace(template) == "" {
		template = defaultTimeline
	}

	return strings.NewReplacer(
		"{cliente}", firstName(event.ClientName),
		"{evento}", event.Title,
		"{data}", event.Date.Format(dateLayout),
		"{cronograma}", timelineText(event.Timeline),
	).Replace(template)
}

// ServiceOrder renders the internal work order shared with the crew. It has
// no template, the format is fixed.
func ServiceOrder(event models.Event) string {
	location := event.Location
	if location == "" {
		location = "A definir"
	}
	startTime := event.StartTime
	if startTime == "" {
		startTime = "?"
	}
	endTime := event.EndTime
	if endTime == "" {
		endTime = "?"
	}

	return fmt.Sprintf("*ORDEM DE SERVIÇO - %s*\n\n📅 Data: %s\n📍 Local: %s\n⏰ Horário: %s - %s\n\n*CHECKLIST OPERACIONAL*\n%s\n\nGerado por Mil Eventos",
		event.Title,
		event.Date.Format(dateLayout),
		location,
		startTime,
		endTime,
		checklistText(event.Checklist))
}

// WhatsAppURL wraps a rendered message in a wa.me share link.
func WhatsAppURL(message string) string {
	return "https://wa.me/?text=" + url.QueryEscape(message)
}

func firstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return "Cliente"
	}
	return fields[0]
}

func timelineText(items []models.TimelineItem) string {
	if len(items) == 0 {
		return "Sem itens"
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		line := fmt.Sprintf("🕒 *%s* - %s", item.Time, item.Title)
		if item.Description != "" {
			line += fmt.Sprintf("\n_%s_", item.Description)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n\n")
}

func checklistText(items []models.ChecklistItem) string {
	if len(items) == 0 {
		return "Sem tarefas"
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		mark := " "
		if item.Done {
			mark = "x"
		}
		lines = append(lines, fmt.Sprintf("- [%s] %s", mark, item.Text))
	}

	return strings.Join(lines, "\n")
}
