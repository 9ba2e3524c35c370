package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/mil-eventos/backend/internal/auth"
	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/notifications"
	"example.com/mil-eventos/backend/internal/store"
)

const dateLayout = "2006-01-02"

type EventHandler struct {
	Store store.Store
	Hub   *notifications.Hub
}

// NewEventHandler creates the calendar event handler.
func NewEventHandler(st store.Store, hub *notifications.Hub) *EventHandler {
	return &EventHandler{Store: st, Hub: hub}
}

type EventRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Date       string `json:"date" validate:"required"`
	Type       string `json:"type" validate:"required,oneof=dj photography decoration other"`
	ClientName string `json:"client_name" validate:"omitempty,max=200"`
	Location   string `json:"location" validate:"omitempty,max=300"`
	StartTime  string `json:"start_time" validate:"omitempty,max=5"`
	EndTime    string `json:"end_time" validate:"omitempty,max=5"`
}

type ChecklistItemRequest struct {
	Text string `json:"text" validate:"required,max=300"`
}

type TimelineItemRequest struct {
	Time        string `json:"time" validate:"required,max=5"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type EventCostRequest struct {
	Description string `json:"description" validate:"required,max=300"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	Category    string `json:"category" validate:"required,oneof=crew transport food equipment other"`
}

type EventResponse struct {
	Event models.Event `json:"event"`
}

type EventCostsResponse struct {
	Costs            []models.EventCost `json:"costs"`
	TotalsByCategory map[string]int64   `json:"totals_by_category"`
	TotalCents       int64              `json:"total_cents"`
}

type EventListResponse struct {
	Events []models.Event `json:"events"`
}

// List returns the explicit events only; derived contract events live on the
// agenda endpoint.
func (h *EventHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	events, err := h.Store.ListEvents(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, EventListResponse{Events: events})
}

// Get returns a single event with its checklist, timeline and costs.
func (h *EventHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	event, err := h.Store.GetEvent(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "event not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, EventResponse{Event: event})
}

// Create persists a new explicit event.
func (h *EventHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return badRequest(c, "invalid date")
	}

	event, err := h.Store.InsertEvent(c.Request().Context(), models.Event{
		UserID:     userID,
		Title:      strings.TrimSpace(req.Title),
		Date:       date,
		Type:       models.EventType(req.Type),
		ClientName: strings.TrimSpace(req.ClientName),
		Location:   strings.TrimSpace(req.Location),
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
	if err != nil {
		return serverError(c)
	}

	h.publishUpdate(userID, event)
	return c.JSON(http.StatusCreated, EventResponse{Event: event})
}

// Update replaces the event's own fields; checklist, timeline and costs are
// managed through their sub-resources.
func (h *EventHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return badRequest(c, "invalid date")
	}

	event, err := h.Store.GetEvent(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "event not found")
		}
		return serverError(c)
	}

	event.Title = strings.TrimSpace(req.Title)
	event.Date = date
	event.Type = models.EventType(req.Type)
	event.ClientName = strings.TrimSpace(req.ClientName)
	event.Location = strings.TrimSpace(req.Location)
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime

	updated, err := h.Store.UpdateEvent(c.Request().Context(), event)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "event not found")
		}
		return serverError(c)
	}

	h.publishUpdate(userID, updated)
	return c.JSON(http.StatusOK, EventResponse{Event: updated})
}

// Delete removes an explicit event.
func (h *EventHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.Store.DeleteEvent(c.Request().Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "event not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// AddChecklistItem appends a task to the event checklist.
func (h *EventHandler) AddChecklistItem(c echo.Context) error {
	var req ChecklistItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	return h.mutateEvent(c, func(event *models.Event) error {
		event.Checklist = append(event.Checklist, models.ChecklistItem{
			ID:   uuid.New().String(),
			Text: strings.TrimSpace(req.Text),
		})
		return nil
	})
}

// ToggleChecklistItem flips a task's done flag.
func (h *EventHandler) ToggleChecklistItem(c echo.Context) error {
	itemID := c.Param("itemId")

	return h.mutateEvent(c, func(event *models.Event) error {
		for i := range event.Checklist {
			if event.Checklist[i].ID == itemID {
				event.Checklist[i].Done = !event.Checklist[i].Done
				return nil
			}
		}
		return store.ErrNotFound
	})
}

// DeleteChecklistItem removes a task from the checklist.
func (h *EventHandler) DeleteChecklistItem(c echo.Context) error {
	itemID := c.Param("itemId")

	return h.mutateEvent(c, func(event *models.Event) error {
		for i := range event.Checklist {
			if event.Checklist[i].ID == itemID {
				event.Checklist = append(event.Checklist[:i], event.Checklist[i+1:]...)
				return nil
			}
		}
		return store.ErrNotFound
	})
}

// AddTimelineItem appends an entry to the event timeline.
func (h *EventHandler) AddTimelineItem(c echo.Context) error {
	var req TimelineItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	return h.mutateEvent(c, func(event *models.Event) error {
		event.Timeline = append(event.Timeline, models.TimelineItem{
			ID:          uuid.New().String(),
			Time:        req.Time,
			Title:       strings.TrimSpace(req.Title),
			Description: strings.TrimSpace(req.Description),
		})
		return nil
	})
}

// DeleteTimelineItem removes an entry from the timeline.
func (h *EventHandler) DeleteTimelineItem(c echo.Context) error {
	itemID := c.Param("itemId")

	return h.mutateEvent(c, func(event *models.Event) error {
		for i := range event.Timeline {
			if event.Timeline[i].ID == itemID {
				event.Timeline = append(event.Timeline[:i], event.Timeline[i+1:]...)
				return nil
			}
		}
		return store.ErrNotFound
	})
}

// AddCost appends an internal cost to the event.
func (h *EventHandler) AddCost(c echo.Context) error {
	var req EventCostRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	return h.mutateEvent(c, func(event *models.Event) error {
		event.Costs = append(event.Costs, models.EventCost{
			ID:          uuid.New().String(),
			Description: strings.TrimSpace(req.Description),
			AmountCents: req.AmountCents,
			Category:    models.CostCategory(req.Category),
		})
		return nil
	})
}

// ListCosts returns the event's internal costs with per-category totals.
func (h *EventHandler) ListCosts(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	event, err := h.Store.GetEvent(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "event not found")
		}
		return serverError(c)
	}

	totals, total := costTotals(event.Costs)
	return c.JSON(http.StatusOK, EventCostsResponse{
		Costs:            event.Costs,
		TotalsByCategory: totals,
		TotalCents:       total,
	})
}

// DeleteCost removes an internal cost from the event.
func (h *EventHandler) DeleteCost(c echo.Context) error {
	itemID := c.Param("itemId")

	return h.mutateEvent(c, func(event *models.Event) error {
		for i := range event.Costs {
			if event.Costs[i].ID == itemID {
				event.Costs = append(event.Costs[:i], event.Costs[i+1:]...)
				return nil
			}
		}
		return store.ErrNotFound
	})
}

func costTotals(costs []models.EventCost) (map[string]int64, int64) {
	totals := make(map[string]int64)
	var total int64

	for _, cost := range costs {
		totals[string(cost.Category)] += cost.AmountCents
		total += cost.AmountCents
	}

	return totals, total
}

// mutateEvent loads the event, applies the mutation and writes it back.
func (h *EventHandler) mutateEvent(c echo.Context, mutate func(*models.Event) error) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	event, err := h.Store.GetEvent(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "event not found")
		}
		return serverError(c)
	}

	if err := mutate(&event); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "item not found")
		}
		return serverError(c)
	}

	updated, err := h.Store.UpdateEvent(c.Request().Context(), event)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "event not found")
		}
		return serverError(c)
	}

	h.publishUpdate(userID, updated)
	return c.JSON(http.StatusOK, EventResponse{Event: updated})
}

func (h *EventHandler) publishUpdate(userID uuid.UUID, event models.Event) {
	if h.Hub == nil {
		return
	}
	h.Hub.Publish(userID, notifications.Event{Type: notifications.EventEventUpdated, Data: event})
}
