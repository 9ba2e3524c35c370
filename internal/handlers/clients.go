package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/mil-eventos/backend/internal/auth"
	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/store"
)

type ClientHandler struct {
	Store store.Store
}

// NewClientHandler creates the client directory handler.
func NewClientHandler(st store.Store) *ClientHandler {
	return &ClientHandler{Store: st}
}

type ClientRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Phone string `json:"phone" validate:"omitempty,max=30"`
	Email string `json:"email" validate:"omitempty,email,max=200"`
}

type ClientResponse struct {
	Client models.Client `json:"client"`
}

type ClientListResponse struct {
	Clients []models.Client `json:"clients"`
}

// List returns the user's clients.
func (h *ClientHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	clients, err := h.Store.ListClients(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ClientListResponse{Clients: clients})
}

// Create adds a client to the directory.
func (h *ClientHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	client, err := h.Store.InsertClient(c.Request().Context(), models.Client{
		UserID: userID,
		Name:   strings.TrimSpace(req.Name),
		Phone:  strings.TrimSpace(req.Phone),
		Email:  strings.ToLower(strings.TrimSpace(req.Email)),
	})
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, ClientResponse{Client: client})
}
