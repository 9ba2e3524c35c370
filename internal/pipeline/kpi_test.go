package pipeline

import (
	"testing"

	"example.com/mil-eventos/backend/internal/models"
)

// TestComputeKPIs checks the aggregate formulas over a mixed ledger.
func TestComputeKPIs(t *testing.T) {
	transactions := []models.Transaction{
		{Type: models.TransactionTypeIncome, Status: models.TransactionStatusPending, AmountCents: 100000},
		{Type: models.TransactionTypeIncome, Status: models.TransactionStatusOverdue, AmountCents: 50000},
		{Type: models.TransactionTypeIncome, Status: models.TransactionStatusPaid, AmountCents: 200000},
		{Type: models.TransactionTypeExpense, Status: models.TransactionStatusPaid, AmountCents: 30000},
		{Type: models.TransactionTypeExpense, Status: models.TransactionStatusPending, AmountCents: 99999},
	}
	proposals := []models.Proposal{
		{Status: models.ProposalStatusSent},
		{Status: models.ProposalStatusAnalysis},
		{Status: models.ProposalStatusClosing},
		{Status: models.ProposalStatusClosed},
		{Status: models.ProposalStatusLost},
	}

	kpis := ComputeKPIs(transactions, proposals, 400000)

	if kpis.ReceivableCents != 150000 {
		t.Fatalf("expected receivable 150000, got %d", kpis.ReceivableCents)
	}
	if kpis.ReceivedCents != 200000 {
		t.Fatalf("expected received 200000, got %d", kpis.ReceivedCents)
	}
	if kpis.NetBalanceCents != 170000 {
		t.Fatalf("expected net balance 170000, got %d", kpis.NetBalanceCents)
	}
	if kpis.ActiveProposals != 3 {
		t.Fatalf("expected 3 active proposals, got %d", kpis.ActiveProposals)
	}
	if kpis.GoalPercent != 50 {
		t.Fatalf("expected goal percent 50, got %d", kpis.GoalPercent)
	}
}

// TestComputeKPIsZeroGoal checks that an unset goal never breaks the
// percentage.
func TestComputeKPIsZeroGoal(t *testing.T) {
	transactions := []models.Transaction{
		{Type: models.TransactionTypeIncome, Status: models.TransactionStatusPaid, AmountCents: 200000},
	}

	for _, goal := range []int64{0, -100} {
		kpis := ComputeKPIs(transactions, nil, goal)
		if kpis.GoalPercent != 20000000 {
			t.Fatalf("goal %d: expected finite percent 20000000, got %d", goal, kpis.GoalPercent)
		}
	}
}

// TestComputeKPIsEmpty checks all-zero output on an empty account.
func TestComputeKPIsEmpty(t *testing.T) {
	kpis := ComputeKPIs(nil, nil, 0)
	if kpis != (KPISet{}) {
		t.Fatalf("expected zero KPI set, got %+v", kpis)
	}
}
