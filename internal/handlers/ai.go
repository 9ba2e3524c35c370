package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/mil-eventos/backend/internal/ai"
	"example.com/mil-eventos/backend/internal/auth"
)

type AIHandler struct {
	Service *ai.Service
}

// NewAIHandler creates the AI extraction handler.
func NewAIHandler(service *ai.Service) *AIHandler {
	return &AIHandler{Service: service}
}

type ExtractRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

type ExtractResponse struct {
	Draft ai.ProposalDraft `json:"draft"`
}

type DescribeRequest struct {
	EventName   string `json:"event_name" validate:"required,max=200"`
	ClientName  string `json:"client_name" validate:"required,max=200"`
	ServiceType string `json:"service_type" validate:"omitempty,max=100"`
}

type DescribeResponse struct {
	Description string `json:"description"`
}

// Extract turns free text, such as a pasted WhatsApp message, into a
// proposal draft.
func (h *AIHandler) Extract(c echo.Context) error {
	if _, ok := auth.UserIDFromContext(c); !ok {
		return unauthorized(c)
	}

	var req ExtractRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	draft, err := h.Service.ExtractProposal(c.Request().Context(), req.Text)
	if err != nil {
		return badRequest(c, "text is empty")
	}

	return c.JSON(http.StatusOK, ExtractResponse{Draft: draft})
}

// Describe generates a short proposal description.
func (h *AIHandler) Describe(c echo.Context) error {
	if _, ok := auth.UserIDFromContext(c); !ok {
		return unauthorized(c)
	}

	var req DescribeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	description, err := h.Service.GenerateDescription(c.Request().Context(), req.EventName, req.ClientName, req.ServiceType)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "description generation failed"})
	}

	return c.JSON(http.StatusOK, DescribeResponse{Description: description})
}
