package finance

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	apperrors "budgetdash/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// Metric selects the zero-baseline rule applied by PercentChange.
type Metric int

const (
	// MetricIncome treats a zero baseline as a +100% increase.
	MetricIncome Metric = iota
	// MetricExpenses treats a zero baseline as no change.
	MetricExpenses
	// MetricSavings treats a zero baseline as +100% and divides by the
	// absolute previous value, since savings may be negative.
	MetricSavings
)

// PercentChange returns ((current - previous) / |previous|) * 100 with the
// metric's rule for a zero previous value. The result is not rounded.
func PercentChange(metric Metric, current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if metric == MetricExpenses {
			return 0
		}
		return 100
	}
	// Income and expense totals are non-negative, so Abs only matters for savings.
	return current.Sub(previous).Div(previous.Abs()).Mul(hundred).InexactFloat64()
}

// IncomeChange is PercentChange for income totals.
func IncomeChange(current, previous decimal.Decimal) float64 {
	return PercentChange(MetricIncome, current, previous)
}

// ExpensesChange is PercentChange for expense totals.
func ExpensesChange(current, previous decimal.Decimal) float64 {
	return PercentChange(MetricExpenses, current, previous)
}

// SavingsChange is PercentChange for savings.
func SavingsChange(current, previous decimal.Decimal) float64 {
	return PercentChange(MetricSavings, current, previous)
}

// ensureFinite rejects NaN and ±Inf so they never reach a response payload.
func ensureFinite(name string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return apperrors.Wrap(apperrors.ErrComputation, fmt.Errorf("non-finite %s: %v", name, v))
		}
	}
	return nil
}
