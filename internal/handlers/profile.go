package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/mil-eventos/backend/internal/auth"
	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/store"
)

type ProfileHandler struct {
	Store store.Store
}

// NewProfileHandler creates the business profile handler.
func NewProfileHandler(st store.Store) *ProfileHandler {
	return &ProfileHandler{Store: st}
}

type ProfileRequest struct {
	Name             string                  `json:"name" validate:"required,max=200"`
	Category         string                  `json:"category" validate:"omitempty,max=100"`
	Phone            string                  `json:"phone" validate:"omitempty,max=30"`
	Email            string                  `json:"email" validate:"omitempty,email,max=200"`
	PixKeyType       string                  `json:"pix_key_type" validate:"omitempty,max=30"`
	PixKey           string                  `json:"pix_key" validate:"omitempty,max=200"`
	ContractTerms    string                  `json:"contract_terms" validate:"omitempty,max=5000"`
	MonthlyGoalCents int64                   `json:"monthly_goal_cents" validate:"gte=0"`
	Bio              string                  `json:"bio" validate:"omitempty,max=1000"`
	Instagram        string                  `json:"instagram" validate:"omitempty,max=200"`
	Website          string                  `json:"website" validate:"omitempty,max=200"`
	Templates        models.MessageTemplates `json:"message_templates"`
}

type GoalRequest struct {
	MonthlyGoalCents int64 `json:"monthly_goal_cents" validate:"gte=0"`
}

type ProfileResponse struct {
	Profile models.BusinessProfile `json:"profile"`
}

// Get returns the business profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	profile, err := h.Store.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ProfileResponse{Profile: profile})
}

// Update replaces the business profile.
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	profile, err := h.Store.UpdateProfile(c.Request().Context(), models.BusinessProfile{
		UserID:           userID,
		Name:             strings.TrimSpace(req.Name),
		Category:         strings.TrimSpace(req.Category),
		Phone:            strings.TrimSpace(req.Phone),
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		PixKeyType:       strings.TrimSpace(req.PixKeyType),
		PixKey:           strings.TrimSpace(req.PixKey),
		ContractTerms:    req.ContractTerms,
		MonthlyGoalCents: req.MonthlyGoalCents,
		Bio:              req.Bio,
		Instagram:        strings.TrimSpace(req.Instagram),
		Website:          strings.TrimSpace(req.Website),
		Templates:        req.Templates,
	})
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ProfileResponse{Profile: profile})
}

// UpdateGoal changes only the monthly revenue goal.
func (h *ProfileHandler) UpdateGoal(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req GoalRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	profile, err := h.Store.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	profile.MonthlyGoalCents = req.MonthlyGoalCents

	updated, err := h.Store.UpdateProfile(c.Request().Context(), profile)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ProfileResponse{Profile: updated})
}
