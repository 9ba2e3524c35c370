package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/mil-eventos/backend/internal/auth"
	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/notifications"
	"example.com/mil-eventos/backend/internal/store"
)

const timeLayout = time.RFC3339

type TransactionHandler struct {
	Store store.Store
	Hub   *notifications.Hub
}

// NewTransactionHandler creates the financial ledger handler.
func NewTransactionHandler(st store.Store, hub *notifications.Hub) *TransactionHandler {
	return &TransactionHandler{Store: st, Hub: hub}
}

type CreateTransactionRequest struct {
	Description string `json:"description" validate:"required,max=300"`
	ClientName  string `json:"client_name" validate:"omitempty,max=200"`
	Category    string `json:"category" validate:"omitempty,max=100"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	Date        string `json:"date" validate:"required"`
	Status      string `json:"status" validate:"required,oneof=pending paid overdue"`
	Type        string `json:"type" validate:"required,oneof=income expense"`
}

type UpdateTransactionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid overdue"`
}

type TransactionResponse struct {
	Transaction models.Transaction `json:"transaction"`
}

type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

// List returns the user's transactions with optional ?status, ?type and
// ?month=YYYY-MM filters.
func (h *TransactionHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	transactions, ok := h.listFiltered(c, userID)
	if !ok {
		return nil
	}

	return c.JSON(http.StatusOK, TransactionListResponse{Transactions: transactions})
}

// Create records a manual income or expense.
func (h *TransactionHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateTransactionRequest
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

	transaction, err := h.Store.InsertTransaction(c.Request().Context(), models.Transaction{
		UserID:      userID,
		Description: strings.TrimSpace(req.Description),
		ClientName:  strings.TrimSpace(req.ClientName),
		Category:    strings.TrimSpace(req.Category),
		AmountCents: req.AmountCents,
		Date:        date,
		Status:      models.TransactionStatus(req.Status),
		Type:        models.TransactionType(req.Type),
	})
	if err != nil {
		return serverError(c)
	}

	if h.Hub != nil {
		h.Hub.Publish(userID, notifications.Event{Type: notifications.EventTransactionCreated, Data: transaction})
	}

	return c.JSON(http.StatusCreated, TransactionResponse{Transaction: transaction})
}

// UpdateStatus marks a transaction pending, paid or overdue.
func (h *TransactionHandler) UpdateStatus(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid transaction id")
	}

	var req UpdateTransactionStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	transaction, err := h.Store.UpdateTransactionStatus(c.Request().Context(), userID, transactionID, models.TransactionStatus(req.Status))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "transaction not found")
		}
		return serverError(c)
	}

	if h.Hub != nil {
		h.Hub.Publish(userID, notifications.Event{Type: notifications.EventTransactionUpdated, Data: transaction})
	}

	return c.JSON(http.StatusOK, TransactionResponse{Transaction: transaction})
}

// ExportCSV downloads the (filtered) ledger as a CSV file.
func (h *TransactionHandler) ExportCSV(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	transactions, ok := h.listFiltered(c, userID)
	if !ok {
		return nil
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"id", "date", "description", "client", "category", "type", "status", "amount_cents", "created_at"}
	if err := writer.Write(header); err != nil {
		return serverError(c)
	}

	for _, transaction := range transactions {
		record := []string{
			transaction.ID.String(),
			transaction.Date.Format(dateLayout),
			transaction.Description,
			transaction.ClientName,
			transaction.Category,
			string(transaction.Type),
			string(transaction.Status),
			strconv.FormatInt(transaction.AmountCents, 10),
			transaction.CreatedAt.Format(timeLayout),
		}
		if err := writer.Write(record); err != nil {
			return serverError(c)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "transactions-" + time.Now().Format(dateLayout) + ".csv"
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// listFiltered loads and filters the transactions. A false return means the
// error response has already been written.
func (h *TransactionHandler) listFiltered(c echo.Context, userID uuid.UUID) ([]models.Transaction, bool) {
	transactions, err := h.Store.ListTransactions(c.Request().Context(), userID)
	if err != nil {
		_ = serverError(c)
		return nil, false
	}

	if raw := strings.ToLower(strings.TrimSpace(c.QueryParam("status"))); raw != "" {
		status := models.TransactionStatus(raw)
		switch status {
		case models.TransactionStatusPending, models.TransactionStatusPaid, models.TransactionStatusOverdue:
		default:
			_ = badRequest(c, "invalid status")
			return nil, false
		}
		transactions = filterTransactions(transactions, func(t models.Transaction) bool {
			return t.Status == status
		})
	}

	if raw := strings.ToLower(strings.TrimSpace(c.QueryParam("type"))); raw != "" {
		transactionType := models.TransactionType(raw)
		switch transactionType {
		case models.TransactionTypeIncome, models.TransactionTypeExpense:
		default:
			_ = badRequest(c, "invalid type")
			return nil, false
		}
		transactions = filterTransactions(transactions, func(t models.Transaction) bool {
			return t.Type == transactionType
		})
	}

	if raw := c.QueryParam("month"); raw != "" {
		month, err := parseMonth(raw)
		if err != nil {
			_ = badRequest(c, "invalid month")
			return nil, false
		}
		transactions = filterTransactions(transactions, func(t models.Transaction) bool {
			return sameMonth(t.Date, month)
		})
	}

	return transactions, true
}

func filterTransactions(transactions []models.Transaction, keep func(models.Transaction) bool) []models.Transaction {
	filtered := make([]models.Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		if keep(transaction) {
			filtered = append(filtered, transaction)
		}
	}
	return filtered
}
