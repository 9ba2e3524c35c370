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

type SupplierHandler struct {
	Store store.Store
}

// NewSupplierHandler creates the supplier directory handler.
func NewSupplierHandler(st store.Store) *SupplierHandler {
	return &SupplierHandler{Store: st}
}

type SupplierRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Category string `json:"category" validate:"omitempty,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

type SupplierResponse struct {
	Supplier models.Supplier `json:"supplier"`
}

type SupplierListResponse struct {
	Suppliers []models.Supplier `json:"suppliers"`
}

// List returns the user's suppliers.
func (h *SupplierHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	suppliers, err := h.Store.ListSuppliers(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, SupplierListResponse{Suppliers: suppliers})
}

// Create adds a supplier.
func (h *SupplierHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	supplier, err := h.Store.InsertSupplier(c.Request().Context(), models.Supplier{
		UserID:   userID,
		Name:     strings.TrimSpace(req.Name),
		Category: strings.TrimSpace(req.Category),
		Phone:    strings.TrimSpace(req.Phone),
	})
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, SupplierResponse{Supplier: supplier})
}

// Delete removes a supplier.
func (h *SupplierHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid supplier id")
	}

	if err := h.Store.DeleteSupplier(c.Request().Context(), userID, supplierID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "supplier not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}
