package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "budgetdash/internal/errors"
	"budgetdash/internal/models"
)

func monthBudget(cat *models.Category, month, amount string) models.Budget {
	return models.Budget{
		Base:        models.Base{ID: "budget-" + cat.ID + "-" + month},
		Amount:      dec(amount),
		CategoryID:  cat.ID,
		BudgetMonth: &month,
		Category:    cat,
	}
}

func TestBudgetProgress_OverBudgetIsNotClamped(t *testing.T) {
	b := monthBudget(food, "2024-05", "100")
	txs := []models.Transaction{
		txn(models.TransactionTypeExpense, "100", food, date(2024, time.May, 3)),
		txn(models.TransactionTypeExpense, "50", food, date(2024, time.May, 31)),
	}

	p, err := BudgetProgress(&b, txs, date(2024, time.June, 10))
	require.NoError(t, err)

	assert.True(t, dec("150").Equal(p.Current))
	assert.True(t, dec("100").Equal(p.Max))
	assert.Equal(t, 150.00, p.Percentage)
	assert.True(t, p.IsOverBudget)
}

func TestBudgetProgress_RoundsToTwoDecimals(t *testing.T) {
	b := monthBudget(food, "2024-05", "300")
	txs := []models.Transaction{
		txn(models.TransactionTypeExpense, "100", food, date(2024, time.May, 3)),
	}

	p, err := BudgetProgress(&b, txs, date(2024, time.May, 10))
	require.NoError(t, err)
	assert.Equal(t, 33.33, p.Percentage)
	assert.False(t, p.IsOverBudget)
}

func TestBudgetProgress_OnlyCountsOwnCategoryExpenses(t *testing.T) {
	b := monthBudget(food, "2024-05", "200")
	txs := []models.Transaction{
		txn(models.TransactionTypeExpense, "40", food, date(2024, time.May, 3)),
		txn(models.TransactionTypeExpense, "500", rent, date(2024, time.May, 3)),
		txn(models.TransactionTypeIncome, "60", food, date(2024, time.May, 3)),
		txn(models.TransactionTypeExpense, "70", food, date(2024, time.April, 30)),
	}

	p, err := BudgetProgress(&b, txs, date(2024, time.May, 10))
	require.NoError(t, err)
	assert.True(t, dec("40").Equal(p.Current))
	assert.Equal(t, 20.0, p.Percentage)
}

func TestBudgetProgress_ExactlyAtLimitIsNotOver(t *testing.T) {
	b := monthBudget(food, "2024-05", "80")
	txs := []models.Transaction{txn(models.TransactionTypeExpense, "80", food, date(2024, time.May, 3))}

	p, err := BudgetProgress(&b, txs, date(2024, time.May, 10))
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.Percentage)
	assert.False(t, p.IsOverBudget)
}

func TestBudgetProgress_ZeroLimit(t *testing.T) {
	b := monthBudget(food, "2024-05", "0")
	txs := []models.Transaction{txn(models.TransactionTypeExpense, "5", food, date(2024, time.May, 3))}

	p, err := BudgetProgress(&b, txs, date(2024, time.May, 10))
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Percentage)
	assert.True(t, p.IsOverBudget)
}

func TestBudgetProgress_RangeKeyedUsesReference(t *testing.T) {
	start := date(2024, time.January, 1)
	b := models.Budget{
		Amount:     dec("50"),
		CategoryID: food.ID,
		Period:     periodPtr(models.BudgetPeriodWeekly),
		StartDate:  &start,
	}
	txs := []models.Transaction{
		txn(models.TransactionTypeExpense, "10", food, date(2024, time.May, 11)), // previous Saturday
		txn(models.TransactionTypeExpense, "20", food, date(2024, time.May, 12)), // Sunday
		txn(models.TransactionTypeExpense, "5", food, time.Date(2024, time.May, 18, 23, 59, 59, 0, time.UTC)),
	}

	p, err := BudgetProgress(&b, txs, date(2024, time.May, 15))
	require.NoError(t, err)
	assert.True(t, dec("25").Equal(p.Current), "current %s", p.Current)
	assert.Equal(t, 50.0, p.Percentage)
	assert.Equal(t, date(2024, time.May, 12), p.Window.Start)
}

func TestBudgetProgress_InvalidDescriptor(t *testing.T) {
	_, err := BudgetProgress(&models.Budget{Amount: dec("10")}, nil, date(2024, time.May, 15))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
