package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the recurrence of a range-keyed budget
type BudgetPeriod string

const (
	BudgetPeriodDaily     BudgetPeriod = "daily"
	BudgetPeriodWeekly    BudgetPeriod = "weekly"
	BudgetPeriodMonthly   BudgetPeriod = "monthly"
	BudgetPeriodQuarterly BudgetPeriod = "quarterly"
	BudgetPeriodYearly    BudgetPeriod = "yearly"
	BudgetPeriodCustom    BudgetPeriod = "custom"
)

// Budget is a spending limit for one category over one window.
//
// A row uses exactly one of two shapes: month-keyed (BudgetMonth set, a
// "YYYY-MM" key) or range-keyed (Period and StartDate set, EndDate optional).
// At most one month-keyed budget exists per category and month.
type Budget struct {
	Base
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	CategoryID  string          `gorm:"type:uuid;not null;uniqueIndex:uq_budgets_category_month" json:"category_id"`
	BudgetMonth *string         `gorm:"size:7;uniqueIndex:uq_budgets_category_month" json:"budget_month,omitempty"`
	Period      *BudgetPeriod   `json:"period,omitempty"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// IsMonthKeyed reports whether the budget uses the "YYYY-MM" shape.
func (b *Budget) IsMonthKeyed() bool {
	return b.BudgetMonth != nil
}
