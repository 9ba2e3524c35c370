package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/mil-eventos/backend/internal/auth"
	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/pipeline"
	"example.com/mil-eventos/backend/internal/store"
)

const monthLayout = "2006-01"

type ProposalHandler struct {
	Store    store.Store
	Pipeline *pipeline.Pipeline
}

// NewProposalHandler creates the proposal pipeline handler.
func NewProposalHandler(st store.Store, p *pipeline.Pipeline) *ProposalHandler {
	return &ProposalHandler{Store: st, Pipeline: p}
}

type CreateProposalRequest struct {
	ClientName  string `json:"client_name" validate:"required,max=200"`
	EventName   string `json:"event_name" validate:"required,max=200"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	EventDate   string `json:"event_date" validate:"required"`
	Status      string `json:"status" validate:"omitempty"`
}

type UpdateStageRequest struct {
	Status      string `json:"status" validate:"required"`
	AmountCents *int64 `json:"amount_cents" validate:"omitempty,gt=0"`
}

type ProposalListResponse struct {
	Proposals []models.Proposal `json:"proposals"`
}

type ProposalBoardResponse struct {
	Columns map[string][]models.Proposal `json:"columns"`
}

type CreateProposalResponse struct {
	Proposal models.Proposal `json:"proposal"`
	Conflict *models.Event   `json:"conflict,omitempty"`
}

type UpdateStageResponse struct {
	Proposal    models.Proposal     `json:"proposal"`
	Transaction *models.Transaction `json:"transaction,omitempty"`
}

// List returns the user's proposals, optionally filtered to one month of
// event dates via ?month=YYYY-MM.
func (h *ProposalHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	proposals, err := h.Store.ListProposals(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	if raw := c.QueryParam("month"); raw != "" {
		month, err := parseMonth(raw)
		if err != nil {
			return badRequest(c, "invalid month")
		}
		proposals = filterProposalsByMonth(proposals, month)
	}

	return c.JSON(http.StatusOK, ProposalListResponse{Proposals: proposals})
}

// Board returns the proposals grouped by pipeline stage.
func (h *ProposalHandler) Board(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	proposals, err := h.Store.ListProposals(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	columns := map[string][]models.Proposal{
		string(models.ProposalStatusSent):     {},
		string(models.ProposalStatusAnalysis): {},
		string(models.ProposalStatusClosing):  {},
		string(models.ProposalStatusClosed):   {},
		string(models.ProposalStatusLost):     {},
	}
	for _, proposal := range proposals {
		key := string(proposal.Status)
		columns[key] = append(columns[key], proposal)
	}

	return c.JSON(http.StatusOK, ProposalBoardResponse{Columns: columns})
}

// Create validates and persists a new proposal. A date collision with the
// schedule comes back as a non-blocking conflict advisory.
func (h *ProposalHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateProposalRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	result, err := h.Pipeline.CreateProposal(c.Request().Context(), userID, pipeline.CreateInput{
		ClientName:  req.ClientName,
		EventName:   req.EventName,
		AmountCents: req.AmountCents,
		EventDate:   req.EventDate,
		Status:      models.ProposalStatus(req.Status),
	})
	if err != nil {
		var validationErr *pipeline.ValidationError
		if errors.As(err, &validationErr) {
			return badRequest(c, validationErr.Error())
		}
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, CreateProposalResponse{
		Proposal: result.Proposal,
		Conflict: result.Conflict,
	})
}

// UpdateStage moves a proposal to another pipeline stage. Closing a proposal
// returns the generated receivable alongside it.
func (h *ProposalHandler) UpdateStage(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid proposal id")
	}

	var req UpdateStageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	proposal, transaction, err := h.Pipeline.UpdateStage(c.Request().Context(), userID, proposalID, models.ProposalStatus(req.Status), req.AmountCents)
	if err != nil {
		var validationErr *pipeline.ValidationError
		if errors.As(err, &validationErr) {
			return badRequest(c, validationErr.Error())
		}
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "proposal not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, UpdateStageResponse{
		Proposal:    proposal,
		Transaction: transaction,
	})
}

func parseMonth(raw string) (time.Time, error) {
	return time.Parse(monthLayout, raw)
}

func filterProposalsByMonth(proposals []models.Proposal, month time.Time) []models.Proposal {
	filtered := make([]models.Proposal, 0, len(proposals))
	for _, proposal := range proposals {
		if sameMonth(proposal.EventDate, month) {
			filtered = append(filtered, proposal)
		}
	}
	return filtered
}

func sameMonth(date, month time.Time) bool {
	return date.Year() == month.Year() && date.Month() == month.Month()
}
