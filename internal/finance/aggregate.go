package finance

import (
	"github.com/shopspring/decimal"

	"budgetdash/internal/models"
)

// CategoryTotal is the expense total of one category within a window.
type CategoryTotal struct {
	CategoryID    string          `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	CategoryColor string          `json:"category_color"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// Aggregate summarises a transaction set over a window.
// Savings is always IncomeTotal minus ExpenseTotal.
type Aggregate struct {
	IncomeTotal  decimal.Decimal `json:"income_total"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	Savings      decimal.Decimal `json:"savings"`
	ByCategory   []CategoryTotal `json:"by_category"`
}

// AggregateTransactions totals the transactions dated inside w. Expenses
// are broken down by category id, in order of first occurrence.
func AggregateTransactions(txs []models.Transaction, w Window) Aggregate {
	agg := Aggregate{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
		ByCategory:   []CategoryTotal{},
	}
	index := make(map[string]int)

	for i := range txs {
		tx := &txs[i]
		if !w.Contains(tx.Date) {
			continue
		}
		switch tx.Type {
		case models.TransactionTypeIncome:
			agg.IncomeTotal = agg.IncomeTotal.Add(tx.Amount)
		case models.TransactionTypeExpense:
			agg.ExpenseTotal = agg.ExpenseTotal.Add(tx.Amount)

			pos, ok := index[tx.CategoryID]
			if !ok {
				entry := CategoryTotal{CategoryID: tx.CategoryID, TotalAmount: decimal.Zero}
				if tx.Category != nil {
					entry.CategoryName = tx.Category.Name
					entry.CategoryColor = tx.Category.Color
				}
				pos = len(agg.ByCategory)
				index[tx.CategoryID] = pos
				agg.ByCategory = append(agg.ByCategory, entry)
			}
			agg.ByCategory[pos].TotalAmount = agg.ByCategory[pos].TotalAmount.Add(tx.Amount)
		}
	}

	agg.Savings = agg.IncomeTotal.Sub(agg.ExpenseTotal)
	return agg
}

// CategoryExpenses sums the expenses of a single category inside w.
func CategoryExpenses(txs []models.Transaction, categoryID string, w Window) decimal.Decimal {
	total := decimal.Zero
	for i := range txs {
		tx := &txs[i]
		if tx.Type != models.TransactionTypeExpense || tx.CategoryID != categoryID {
			continue
		}
		if w.Contains(tx.Date) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}
