package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"budgetdash/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestCategory creates a category of the given type with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:  fmt.Sprintf("Test Category %d", nextID()),
		Color: "#336699",
		Type:  categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction with the given type, amount and date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, categoryID string, txType models.TransactionType, amount string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Amount:      decimal.RequireFromString(amount),
		Date:        date.UTC(),
		Type:        txType,
		CategoryID:  categoryID,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestMonthBudget creates a month-keyed budget.
func CreateTestMonthBudget(t *testing.T, db *gorm.DB, categoryID, month, amount string) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Amount:      decimal.RequireFromString(amount),
		CategoryID:  categoryID,
		BudgetMonth: &month,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test month budget: %v", err)
	}
	return budget
}

// CreateTestRangeBudget creates a range-keyed budget with no end date.
func CreateTestRangeBudget(t *testing.T, db *gorm.DB, categoryID string, period models.BudgetPeriod, start time.Time, amount string) *models.Budget {
	t.Helper()

	start = start.UTC()
	budget := &models.Budget{
		Amount:     decimal.RequireFromString(amount),
		CategoryID: categoryID,
		Period:     &period,
		StartDate:  &start,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test range budget: %v", err)
	}
	return budget
}
