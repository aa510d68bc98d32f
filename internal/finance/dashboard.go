package finance

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "budgetdash/internal/errors"
	"budgetdash/internal/models"
)

// TrailingMonths is the length of the monthly trend series.
const TrailingMonths = 6

// Snapshot is the record set a dashboard is built from. Transactions must
// cover DashboardSpan for the target month so every window is sliced from
// the same read.
type Snapshot struct {
	Transactions []models.Transaction
	Budgets      []models.Budget
	Recent       []models.Transaction
}

// MetricSummary pairs a current-month total with its change against the previous month.
type MetricSummary struct {
	Amount decimal.Decimal `json:"amount"`
	Change float64         `json:"change"`
}

// Summary holds the headline figures of the target month.
type Summary struct {
	Income   MetricSummary   `json:"income"`
	Expenses MetricSummary   `json:"expenses"`
	Savings  MetricSummary   `json:"savings"`
	Balance  decimal.Decimal `json:"balance"`
}

// BudgetSummary is one budget and its progress on the dashboard.
type BudgetSummary struct {
	ID            string               `json:"id"`
	CategoryID    string               `json:"category_id"`
	CategoryName  string               `json:"category_name"`
	CategoryColor string               `json:"category_color"`
	BudgetMonth   *string              `json:"budget_month,omitempty"`
	Period        *models.BudgetPeriod `json:"period,omitempty"`
	Progress
}

// MonthlyPoint is one month of the trailing trend series.
type MonthlyPoint struct {
	Month        string          `json:"month"`
	Label        string          `json:"label"`
	IncomeTotal  decimal.Decimal `json:"income_total"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	Savings      decimal.Decimal `json:"savings"`
}

// DashboardSummary is the consolidated view of one month.
type DashboardSummary struct {
	Month              string               `json:"month"`
	Summary            Summary              `json:"summary"`
	ExpensesByCategory []CategoryTotal      `json:"expenses_by_category"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
	Budgets            []BudgetSummary      `json:"budgets"`
	MonthlyData        []MonthlyPoint       `json:"monthly_data"`
}

// DashboardSpan returns the smallest window covering every window
// BuildDashboard slices for target: the trailing series ending with target,
// which also covers target's previous month.
func DashboardSpan(target MonthKey, loc *time.Location) Window {
	return Window{
		Start: target.AddMonths(-(TrailingMonths - 1)).Window(loc).Start,
		End:   target.Window(loc).End,
	}
}

// budgetReference is the instant budgets on target's dashboard are resolved
// at: ref itself while target is the month containing ref, otherwise the
// last instant of target.
func budgetReference(target MonthKey, ref time.Time) time.Time {
	if MonthKeyOf(ref) == target {
		return ref
	}
	return target.Window(ref.Location()).End
}

// DashboardBudgets selects the budgets shown for target: month-keyed budgets
// of exactly that month, and range-keyed monthly budgets active at
// budgetReference(target, ref).
func DashboardBudgets(budgets []models.Budget, target MonthKey, ref time.Time) []models.Budget {
	ref = budgetReference(target, ref)
	key := target.String()
	selected := make([]models.Budget, 0, len(budgets))
	for i := range budgets {
		b := budgets[i]
		if b.BudgetMonth != nil {
			if *b.BudgetMonth == key {
				selected = append(selected, b)
			}
			continue
		}
		if b.Period == nil || *b.Period != models.BudgetPeriodMonthly || b.StartDate == nil {
			continue
		}
		if b.StartDate.After(ref) {
			continue
		}
		if b.EndDate != nil && b.EndDate.Before(ref) {
			continue
		}
		selected = append(selected, b)
	}
	return selected
}

// BuildDashboard composes the summary of target from snap. Any failing step
// fails the whole build; no partial summary is returned.
func BuildDashboard(target MonthKey, snap Snapshot, ref time.Time) (*DashboardSummary, error) {
	loc := ref.Location()

	current := AggregateTransactions(snap.Transactions, target.Window(loc))
	previous := AggregateTransactions(snap.Transactions, target.Previous().Window(loc))

	summary := Summary{
		Income: MetricSummary{
			Amount: current.IncomeTotal,
			Change: IncomeChange(current.IncomeTotal, previous.IncomeTotal),
		},
		Expenses: MetricSummary{
			Amount: current.ExpenseTotal,
			Change: ExpensesChange(current.ExpenseTotal, previous.ExpenseTotal),
		},
		Savings: MetricSummary{
			Amount: current.Savings,
			Change: SavingsChange(current.Savings, previous.Savings),
		},
		Balance: current.IncomeTotal.Sub(current.ExpenseTotal),
	}
	if err := ensureFinite("period change",
		summary.Income.Change, summary.Expenses.Change, summary.Savings.Change); err != nil {
		return nil, err
	}

	budgetRef := budgetReference(target, ref)
	selected := DashboardBudgets(snap.Budgets, target, budgetRef)
	budgets := make([]BudgetSummary, 0, len(selected))
	for i := range selected {
		b := &selected[i]
		if b.Category == nil {
			return nil, apperrors.WithMessage(apperrors.ErrCategoryNotFound,
				"budget "+b.ID+" references a category that no longer exists")
		}
		progress, err := BudgetProgress(b, snap.Transactions, budgetRef)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, BudgetSummary{
			ID:            b.ID,
			CategoryID:    b.CategoryID,
			CategoryName:  b.Category.Name,
			CategoryColor: b.Category.Color,
			BudgetMonth:   b.BudgetMonth,
			Period:        b.Period,
			Progress:      *progress,
		})
	}

	recent := snap.Recent
	if recent == nil {
		recent = []models.Transaction{}
	}

	return &DashboardSummary{
		Month:              target.String(),
		Summary:            summary,
		ExpensesByCategory: current.ByCategory,
		RecentTransactions: recent,
		Budgets:            budgets,
		MonthlyData:        TrailingSeries(snap.Transactions, target, loc),
	}, nil
}

// TrailingSeries aggregates each of the TrailingMonths months ending at
// target, oldest first.
func TrailingSeries(txs []models.Transaction, target MonthKey, loc *time.Location) []MonthlyPoint {
	series := make([]MonthlyPoint, 0, TrailingMonths)
	for i := TrailingMonths - 1; i >= 0; i-- {
		month := target.AddMonths(-i)
		agg := AggregateTransactions(txs, month.Window(loc))
		series = append(series, MonthlyPoint{
			Month:        month.String(),
			Label:        month.Label(),
			IncomeTotal:  agg.IncomeTotal,
			ExpenseTotal: agg.ExpenseTotal,
			Savings:      agg.Savings,
		})
	}
	return series
}
