package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/mil-eventos/backend/internal/auth"
	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/store"
)

type ServiceHandler struct {
	Store store.Store
}

// NewServiceHandler creates the service package handler.
func NewServiceHandler(st store.Store) *ServiceHandler {
	return &ServiceHandler{Store: st}
}

type ServicePackageRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=500"`
	PriceCents  int64  `json:"price_cents" validate:"required,gt=0"`
}

type ServicePackageResponse struct {
	Service models.ServicePackage `json:"service"`
}

type ServicePackageListResponse struct {
	Services []models.ServicePackage `json:"services"`
}

// List returns the user's service packages.
func (h *ServiceHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	services, err := h.Store.ListServicePackages(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ServicePackageListResponse{Services: services})
}

// Create adds a service package to the catalog.
func (h *ServiceHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req ServicePackageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	service, err := h.Store.InsertServicePackage(c.Request().Context(), models.ServicePackage{
		UserID:      userID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		PriceCents:  req.PriceCents,
	})
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, ServicePackageResponse{Service: service})
}

// Delete removes a service package.
func (h *ServiceHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid service id")
	}

	if err := h.Store.DeleteServicePackage(c.Request().Context(), userID, serviceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "service not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}
