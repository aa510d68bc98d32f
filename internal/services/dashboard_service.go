package services

import (
	"time"

	"gorm.io/gorm"

	"budgetdash/internal/finance"
)

// recentTransactionCount is how many of the newest transactions the dashboard lists.
const recentTransactionCount = 5

// dashboardService assembles the monthly dashboard from a single snapshot of
// the record store.
type dashboardService struct {
	store recordStore
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB) DashboardServicer {
	return &dashboardService{store: recordStore{db: db}}
}

// GetDashboard builds the summary of target as seen at ref. Transactions are
// read once over the span every window needs, then sliced in memory.
func (s *dashboardService) GetDashboard(target finance.MonthKey, ref time.Time) (*finance.DashboardSummary, error) {
	span := finance.DashboardSpan(target, ref.Location())

	txs, err := s.store.listTransactions(transactionQuery{Window: &span})
	if err != nil {
		return nil, err
	}
	budgets, err := s.store.listBudgets(budgetQuery{})
	if err != nil {
		return nil, err
	}
	recent, err := s.store.recentTransactions(recentTransactionCount)
	if err != nil {
		return nil, err
	}

	summary, err := finance.BuildDashboard(target, finance.Snapshot{
		Transactions: txs,
		Budgets:      budgets,
		Recent:       recent,
	}, ref)
	if err != nil {
		logComputationError(err, "month", target.String())
		return nil, err
	}
	return summary, nil
}
