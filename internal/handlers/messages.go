package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/mil-eventos/backend/internal/auth"
	"example.com/mil-eventos/backend/internal/messages"
	"example.com/mil-eventos/backend/internal/store"
)

const (
	messageKindReview       = "review"
	messageKindTimeline     = "timeline"
	messageKindServiceOrder = "service-order"
)

type MessageHandler struct {
	Store store.Store
}

// NewMessageHandler creates the share message handler.
func NewMessageHandler(st store.Store) *MessageHandler {
	return &MessageHandler{Store: st}
}

type MessageResponse struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// ForEvent renders one of the shareable messages for an event: the review
// request, the client timeline or the crew service order. Templates come
// from the business profile.
func (h *MessageHandler) ForEvent(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	kind := c.Param("kind")
	switch kind {
	case messageKindReview, messageKindTimeline, messageKindServiceOrder:
	default:
		return badRequest(c, "invalid message kind")
	}

	event, err := h.Store.GetEvent(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "event not found")
		}
		return serverError(c)
	}

	profile, err := h.Store.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	var message string
	switch kind {
	case messageKindReview:
		message = messages.Review(profile.Templates, event)
	case messageKindTimeline:
		message = messages.Timeline(profile.Templates, event)
	case messageKindServiceOrder:
		message = messages.ServiceOrder(event)
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message:     message,
		WhatsAppURL: messages.WhatsAppURL(message),
	})
}

type ProposalMessageRequest struct {
	Link string `json:"link" validate:"omitempty,url,max=500"`
}

// ForProposal renders the proposal share message with an optional link.
func (h *MessageHandler) ForProposal(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid proposal id")
	}

	var req ProposalMessageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	proposal, err := h.Store.GetProposal(c.Request().Context(), userID, proposalID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "proposal not found")
		}
		return serverError(c)
	}

	profile, err := h.Store.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	message := messages.Proposal(profile.Templates, proposal.ClientName, proposal.EventName, req.Link)
	return c.JSON(http.StatusOK, MessageResponse{
		Message:     message,
		WhatsAppURL: messages.WhatsAppURL(message),
	})
}
