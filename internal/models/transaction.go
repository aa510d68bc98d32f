package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// TransactionTag is a status annotation. It never affects aggregation.
type TransactionTag string

const (
	TransactionTagNone     TransactionTag = "none"
	TransactionTagMissing  TransactionTag = "missing"
	TransactionTagPaid     TransactionTag = "paid"
	TransactionTagToReturn TransactionTag = "to_return"
	TransactionTagSavings  TransactionTag = "savings"
)

// Transaction is a single income or expense entry. Amount is always a
// non-negative magnitude; the sign is carried by Type.
type Transaction struct {
	Base
	Description string          `gorm:"not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Type        TransactionType `gorm:"not null" json:"type"`
	CategoryID  string          `gorm:"type:uuid;not null;index" json:"category_id"`
	Notes       *string         `json:"notes,omitempty"`
	Tag         *TransactionTag `json:"tag,omitempty"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
