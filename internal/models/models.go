package models

import (
	"time"

	"github.com/google/uuid"
)

type ProposalStatus string

type EventType string

type CostCategory string

type TransactionStatus string

type TransactionType string

const (
	ProposalStatusSent     ProposalStatus = "sent"
	ProposalStatusAnalysis ProposalStatus = "analysis"
	ProposalStatusClosing  ProposalStatus = "closing"
	ProposalStatusClosed   ProposalStatus = "closed"
	ProposalStatusLost     ProposalStatus = "lost"

	EventTypeDJ          EventType = "dj"
	EventTypePhotography EventType = "photography"
	EventTypeDecoration  EventType = "decoration"
	EventTypeOther       EventType = "other"

	CostCategoryCrew      CostCategory = "crew"
	CostCategoryTransport CostCategory = "transport"
	CostCategoryFood      CostCategory = "food"
	CostCategoryEquipment CostCategory = "equipment"
	CostCategoryOther     CostCategory = "other"

	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusPaid    TransactionStatus = "paid"
	TransactionStatusOverdue TransactionStatus = "overdue"

	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// ValidProposalStatus reports whether status is one of the pipeline stages.
func ValidProposalStatus(status ProposalStatus) bool {
	switch status {
	case ProposalStatusSent, ProposalStatusAnalysis, ProposalStatusClosing, ProposalStatusClosed, ProposalStatusLost:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Proposal struct {
	ID          uuid.UUID      `json:"id"`
	UserID      uuid.UUID      `json:"user_id"`
	ClientName  string         `json:"client_name"`
	EventName   string         `json:"event_name"`
	AmountCents int64          `json:"amount_cents"`
	EventDate   time.Time      `json:"event_date"`
	Status      ProposalStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type ChecklistItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type TimelineItem struct {
	ID          string `json:"id"`
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type EventCost struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	AmountCents int64        `json:"amount_cents"`
	Category    CostCategory `json:"category"`
}

// Event is a calendar entry. Explicit events are persisted; events derived
// from closed proposals are synthesized on read and carry a "prop-" id prefix.
type Event struct {
	ID          string          `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Title       string          `json:"title"`
	Date        time.Time       `json:"date"`
	Type        EventType       `json:"type"`
	ClientName  string          `json:"client_name"`
	Location    string          `json:"location,omitempty"`
	StartTime   string          `json:"start_time,omitempty"`
	EndTime     string          `json:"end_time,omitempty"`
	Checklist   []ChecklistItem `json:"checklist,omitempty"`
	Timeline    []TimelineItem  `json:"timeline,omitempty"`
	Costs       []EventCost     `json:"costs,omitempty"`
	AmountCents int64           `json:"amount_cents,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type Transaction struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	Description string            `json:"description"`
	ClientName  string            `json:"client_name,omitempty"`
	Category    string            `json:"category,omitempty"`
	AmountCents int64             `json:"amount_cents"`
	Date        time.Time         `json:"date"`
	Status      TransactionStatus `json:"status"`
	Type        TransactionType   `json:"type"`
	ProposalID  *uuid.UUID        `json:"proposal_id,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

type Client struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Supplier struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ServicePackage struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	CreatedAt   time.Time `json:"created_at"`
}

// MessageTemplates holds the texts filled by the message renderer, keyed by
// purpose. Placeholders: {cliente}, {evento}, {data}, {cronograma}, {link}.
type MessageTemplates struct {
	Proposal string `json:"proposal,omitempty"`
	Review   string `json:"review,omitempty"`
	Timeline string `json:"timeline,omitempty"`
}

type BusinessProfile struct {
	UserID           uuid.UUID        `json:"user_id"`
	Name             string           `json:"name"`
	Category         string           `json:"category,omitempty"`
	Phone            string           `json:"phone,omitempty"`
	Email            string           `json:"email,omitempty"`
	PixKeyType       string           `json:"pix_key_type,omitempty"`
	PixKey           string           `json:"pix_key,omitempty"`
	ContractTerms    string           `json:"contract_terms,omitempty"`
	MonthlyGoalCents int64            `json:"monthly_goal_cents"`
	Bio              string           `json:"bio,omitempty"`
	Instagram        string           `json:"instagram,omitempty"`
	Website          string           `json:"website,omitempty"`
	Templates        MessageTemplates `json:"message_templates"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
