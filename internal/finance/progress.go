package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"budgetdash/internal/models"
)

// Progress is a budget's consumption over its resolved window.
// Percentage is rounded to two decimals and is not clamped at 100.
type Progress struct {
	Current      decimal.Decimal `json:"current"`
	Max          decimal.Decimal `json:"max"`
	Percentage   float64         `json:"percentage"`
	IsOverBudget bool            `json:"is_over_budget"`
	Window       Window          `json:"-"`
}

// BudgetProgress computes how much of b has been spent by the expense
// transactions in txs that fall in b's window relative to ref.
func BudgetProgress(b *models.Budget, txs []models.Transaction, ref time.Time) (*Progress, error) {
	d, err := DescriptorOf(b)
	if err != nil {
		return nil, err
	}
	w, err := Resolve(d, ref)
	if err != nil {
		return nil, err
	}

	current := CategoryExpenses(txs, b.CategoryID, w)
	p := &Progress{
		Current:      current,
		Max:          b.Amount,
		IsOverBudget: current.GreaterThan(b.Amount),
		Window:       w,
	}
	if b.Amount.IsPositive() {
		p.Percentage = current.Div(b.Amount).Mul(hundred).Round(2).InexactFloat64()
	}
	if err := ensureFinite("budget percentage", p.Percentage); err != nil {
		return nil, err
	}
	return p, nil
}
