package local

import (
	"context"
	"time"

	"github.com/google/uuid"

	"example.com/mil-eventos/backend/internal/models"
	"example.com/mil-eventos/backend/internal/store"
)

// ListTransactions returns the user's transactions, newest first.
func (s *Store) ListTransactions(_ context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(userID)
	if err != nil {
		return nil, err
	}

	transactions := make([]models.Transaction, len(doc.Transactions))
	copy(transactions, doc.Transactions)
	return transactions, nil
}

// InsertTransaction persists a new transaction at the head of the list.
func (s *Store) InsertTransaction(_ context.Context, transaction models.Transaction) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(transaction.UserID)
	if err != nil {
		return models.Transaction{}, err
	}

	transaction.ID = uuid.New()
	transaction.CreatedAt = now()

	doc.Transactions = append([]models.Transaction{transaction}, doc.Transactions...)
	if err := s.saveDocument(transaction.UserID, doc); err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// UpdateTransactionStatus sets the payment status of a transaction.
func (s *Store) UpdateTransactionStatus(_ context.Context, userID, id uuid.UUID, status models.TransactionStatus) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument(userID)
	if err != nil {
		return models.Transaction{}, err
	}

	for i, transaction := range doc.Transactions {
		if transaction.ID != id {
			continue
		}

		transaction.Status = status
		doc.Transactions[i] = transaction

		if err := s.saveDocument(userID, doc); err != nil {
			return models.Transaction{}, err
		}

		return transaction, nil
	}

	return models.Transaction{}, store.ErrNotFound
}

// MarkOverdueTransactions flips pending income transactions dated before the
// cutoff to overdue, across every stored account document.
func (s *Store) MarkOverdueTransactions(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.userDocuments()
	if err != nil {
		return 0, err
	}

	var flipped int64
	for _, userID := range ids {
		doc, err := s.loadDocument(userID)
		if err != nil {
			return flipped, err
		}

		changed := false
		for i, transaction := range doc.Transactions {
			if transaction.Status != models.TransactionStatusPending || transaction.Type != models.TransactionTypeIncome {
				continue
			}
			if !transaction.Date.Before(before) {
				continue
			}

			doc.Transactions[i].Status = models.TransactionStatusOverdue
			flipped++
			changed = true
		}

		if changed {
			if err := s.saveDocument(userID, doc); err != nil {
				return flipped, err
			}
		}
	}

	return flipped, nil
}
