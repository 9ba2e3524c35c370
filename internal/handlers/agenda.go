package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/mil-eventos/backend/internal/auth"
	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/pipeline"
	"example.com/mil-eventos/backend/internal/store"
)

type AgendaHandler struct {
	Store store.Store
}

// NewAgendaHandler creates the unified calendar handler.
func NewAgendaHandler(st store.Store) *AgendaHandler {
	return &AgendaHandler{Store: st}
}

type AgendaResponse struct {
	Events []models.Event `json:"events"`
}

// List returns the unified schedule: explicit events plus one synthetic
// full-day event per closed proposal. ?month=YYYY-MM narrows the view.
func (h *AgendaHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	events, err := h.Store.ListEvents(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	proposals, err := h.Store.ListProposals(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	schedule := pipeline.ProjectSchedule(events, proposals)

	if raw := c.QueryParam("month"); raw != "" {
		month, err := parseMonth(raw)
		if err != nil {
			return badRequest(c, "invalid month")
		}

		filtered := make([]models.Event, 0, len(schedule))
		for _, event := range schedule {
			if sameMonth(event.Date, month) {
				filtered = append(filtered, event)
			}
		}
		schedule = filtered
	}

	return c.JSON(http.StatusOK, AgendaResponse{Events: schedule})
}
