package pipeline

import (
	"example.com/mil-eventos/backend/internal/models"
)

// KPISet is the dashboard summary. Purely derived from the transaction and
// proposal sets plus the monthly goal; nothing here is persisted.
type KPISet struct {
	ReceivableCents int64 `json:"receivable_cents"`
	ReceivedCents   int64 `json:"received_cents"`
	NetBalanceCents int64 `json:"net_balance_cents"`
	ActiveProposals int   `json:"active_proposals"`
	GoalPercent     int64 `json:"goal_percent"`
}

// ComputeKPIs aggregates the read-side financial view. A zero or negative
// monthly goal falls back to a divisor of one cent, which keeps the
// percentage finite instead of failing.
func ComputeKPIs(transactions []models.Transaction, proposals []models.Proposal, monthlyGoalCents int64) KPISet {
	var kpis KPISet

	var paidExpenseCents int64
	for _, transaction := range transactions {
		switch transaction.Type {
		case models.TransactionTypeIncome:
			switch transaction.Status {
			case models.TransactionStatusPending, models.TransactionStatusOverdue:
				kpis.ReceivableCents += transaction.AmountCents
			case models.TransactionStatusPaid:
				kpis.ReceivedCents += transaction.AmountCents
			}
		case models.TransactionTypeExpense:
			if transaction.Status == models.TransactionStatusPaid {
				paidExpenseCents += transaction.AmountCents
			}
		}
	}

	kpis.NetBalanceCents = kpis.ReceivedCents - paidExpenseCents

	for _, proposal := range proposals {
		if proposal.Status != models.ProposalStatusClosed && proposal.Status != models.ProposalStatusLost {
			kpis.ActiveProposals++
		}
	}

	divisor := monthlyGoalCents
	if divisor <= 0 {
		divisor = 1
	}
	kpis.GoalPercent = (100*kpis.ReceivedCents + divisor/2) / divisor

	return kpis
}
