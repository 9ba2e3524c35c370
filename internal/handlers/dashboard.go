package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/mil-eventos/backend/internal/auth"
	"example.com/mil-eventos/backend/internal/pipeline"
	"example.com/mil-eventos/backend/internal/store"
)

type DashboardHandler struct {
	Store store.Store
}

// NewDashboardHandler creates the KPI summary handler.
func NewDashboardHandler(st store.Store) *DashboardHandler {
	return &DashboardHandler{Store: st}
}

type DashboardResponse struct {
	KPIs             pipeline.KPISet `json:"kpis"`
	MonthlyGoalCents int64           `json:"monthly_goal_cents"`
}

// Summary computes the financial KPIs over the full ledger and pipeline.
// Everything is derived on read; nothing here is cached or persisted.
func (h *DashboardHandler) Summary(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	ctx := c.Request().Context()

	transactions, err := h.Store.ListTransactions(ctx, userID)
	if err != nil {
		return serverError(c)
	}

	proposals, err := h.Store.ListProposals(ctx, userID)
	if err != nil {
		return serverError(c)
	}

	profile, err := h.Store.GetProfile(ctx, userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, DashboardResponse{
		KPIs:             pipeline.ComputeKPIs(transactions, proposals, profile.MonthlyGoalCents),
		MonthlyGoalCents: profile.MonthlyGoalCents,
	})
}
