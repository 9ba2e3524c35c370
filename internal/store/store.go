package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"example.com/mil-eventos/backend/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid input")
)

// ProposalUpdate is a replace-by-id of the mutable proposal fields. A nil
// AmountCents keeps the stored amount.
type ProposalUpdate struct {
	Status      models.ProposalStatus
	AmountCents *int64
}

// Store is the persistence facade. Two backends implement it: the postgres
// live store and the on-disk local store used in demo mode. UpdateProposal
// returns the stage that was persisted before the write so callers can detect
// stage transitions without racing a separate read.
type Store interface {
	CreateUser(ctx context.Context, email, passwordHash string, name *string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)

	ListProposals(ctx context.Context, userID uuid.UUID) ([]models.Proposal, error)
	GetProposal(ctx context.Context, userID, id uuid.UUID) (models.Proposal, error)
	InsertProposal(ctx context.Context, proposal models.Proposal) (models.Proposal, error)
	UpdateProposal(ctx context.Context, userID, id uuid.UUID, update ProposalUpdate) (models.Proposal, models.ProposalStatus, error)

	ListEvents(ctx context.Context, userID uuid.UUID) ([]models.Event, error)
	GetEvent(ctx context.Context, userID uuid.UUID, id string) (models.Event, error)
	InsertEvent(ctx context.Context, event models.Event) (models.Event, error)
	UpdateEvent(ctx context.Context, event models.Event) (models.Event, error)
	DeleteEvent(ctx context.Context, userID uuid.UUID, id string) error

	ListTransactions(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error)
	InsertTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error)
	UpdateTransactionStatus(ctx context.Context, userID, id uuid.UUID, status models.TransactionStatus) (models.Transaction, error)
	MarkOverdueTransactions(ctx context.Context, before time.Time) (int64, error)

	ListClients(ctx context.Context, userID uuid.UUID) ([]models.Client, error)
	FindClientByName(ctx context.Context, userID uuid.UUID, name string) (models.Client, error)
	InsertClient(ctx context.Context, client models.Client) (models.Client, error)

	ListSuppliers(ctx context.Context, userID uuid.UUID) ([]models.Supplier, error)
	InsertSupplier(ctx context.Context, supplier models.Supplier) (models.Supplier, error)
	DeleteSupplier(ctx context.Context, userID, id uuid.UUID) error

	ListServicePackages(ctx context.Context, userID uuid.UUID) ([]models.ServicePackage, error)
	InsertServicePackage(ctx context.Context, pkg models.ServicePackage) (models.ServicePackage, error)
	DeleteServicePackage(ctx context.Context, userID, id uuid.UUID) error

	GetProfile(ctx context.Context, userID uuid.UUID) (models.BusinessProfile, error)
	UpdateProfile(ctx context.Context, profile models.BusinessProfile) (models.BusinessProfile, error)

	Close()
}
