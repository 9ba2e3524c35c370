package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/store"
)

// ListTransactions returns the user's transactions, newest first.
func (s *Store) ListTransactions(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, description, client_name, category, amount_cents, date, status, type, proposal_id, created_at
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY date DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var transaction models.Transaction

		err := rows.Scan(&transaction.ID, &transaction.UserID, &transaction.Description, &transaction.ClientName, &transaction.Category,
			&transaction.AmountCents, &transaction.Date, &transaction.Status, &transaction.Type, &transaction.ProposalID, &transaction.CreatedAt)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, transaction)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

// InsertTransaction persists a new transaction.
func (s *Store) InsertTransaction(ctx context.Context, transaction models.Transaction) (models.Transaction, error) {
	var created models.Transaction

	err := s.db.QueryRow(ctx,
		`INSERT INTO transactions (user_id, description, client_name, category, amount_cents, date, status, type, proposal_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, user_id, description, client_name, category, amount_cents, date, status, type, proposal_id, created_at`,
		transaction.UserID, transaction.Description, transaction.ClientName, transaction.Category, transaction.AmountCents,
		transaction.Date, transaction.Status, transaction.Type, transaction.ProposalID,
	).Scan(&created.ID, &created.UserID, &created.Description, &created.ClientName, &created.Category,
		&created.AmountCents, &created.Date, &created.Status, &created.Type, &created.ProposalID, &created.CreatedAt)
	if err != nil {
		return created, err
	}

	return created, nil
}

// UpdateTransactionStatus sets the payment status of a transaction.
func (s *Store) UpdateTransactionStatus(ctx context.Context, userID, id uuid.UUID, status models.TransactionStatus) (models.Transaction, error) {
	var transaction models.Transaction

	err := s.db.QueryRow(ctx,
		`UPDATE transactions
		 SET status = $3
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, description, client_name, category, amount_cents, date, status, type, proposal_id, created_at`,
		id, userID, status,
	).Scan(&transaction.ID, &transaction.UserID, &transaction.Description, &transaction.ClientName, &transaction.Category,
		&transaction.AmountCents, &transaction.Date, &transaction.Status, &transaction.Type, &transaction.ProposalID, &transaction.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return transaction, store.ErrNotFound
		}
		return transaction, err
	}

	return transaction, nil
}

// MarkOverdueTransactions flips pending income transactions dated before the
// cutoff to overdue, across all accounts. Used by the daily sweep.
func (s *Store) MarkOverdueTransactions(ctx context.Context, before time.Time) (int64, error) {
	cmd, err := s.db.Exec(ctx,
		`UPDATE transactions
		 SET status = $1
		 WHERE status = $2 AND type = $3 AND date < $4`,
		models.TransactionStatusOverdue, models.TransactionStatusPending, models.TransactionTypeIncome, before,
	)
	if err != nil {
		return 0, err
	}

	return cmd.RowsAffected(), nil
}
