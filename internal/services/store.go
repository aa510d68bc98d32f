package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "budgetdash/internal/errors"
	"budgetdash/internal/finance"
	"budgetdash/internal/models"
)

// recordStore is the read/write surface the finance engine is fed from.
// Every read returns fully materialised rows; aggregation happens in memory.
type recordStore struct {
	db *gorm.DB
}

// withCategory attaches each row's category.
func withCategory(db *gorm.DB) *gorm.DB {
	return db.Preload("Category")
}

// transactionQuery narrows listTransactions. Zero values mean "no filter".
type transactionQuery struct {
	Window     *finance.Window
	CategoryID string
	Type       models.TransactionType
}

// budgetQuery narrows listBudgets. Zero values mean "no filter".
type budgetQuery struct {
	Month      string
	CategoryID string
}

// listTransactions returns the live transactions matching q with their
// category attached, newest first.
func (r recordStore) listTransactions(q transactionQuery) ([]models.Transaction, error) {
	query := r.db.Model(&models.Transaction{}).Scopes(withCategory)
	if q.Window != nil {
		query = query.Where("date BETWEEN ? AND ?", q.Window.Start.UTC(), q.Window.End.UTC())
	}
	if q.CategoryID != "" {
		query = query.Where("category_id = ?", q.CategoryID)
	}
	if q.Type != "" {
		query = query.Where("type = ?", q.Type)
	}

	var txs []models.Transaction
	if err := query.Order("date DESC").Order("id DESC").Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txs, nil
}

// recentTransactions returns the n newest live transactions.
func (r recordStore) recentTransactions(n int) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := r.db.Scopes(withCategory).Order("date DESC").Order("id DESC").Limit(n).Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txs, nil
}

// listBudgets returns the budgets matching q with their category attached.
// A budget whose category row is gone comes back with a nil Category.
func (r recordStore) listBudgets(q budgetQuery) ([]models.Budget, error) {
	query := r.db.Model(&models.Budget{}).Scopes(withCategory)
	if q.Month != "" {
		query = query.Where("budget_month = ?", q.Month)
	}
	if q.CategoryID != "" {
		query = query.Where("category_id = ?", q.CategoryID)
	}

	var budgets []models.Budget
	if err := query.Order("created_at ASC").Order("id ASC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// getCategory returns the category with the given id or CATEGORY_NOT_FOUND.
func (r recordStore) getCategory(id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// createBudgets inserts rows in one database transaction. A unique
// constraint violation aborts the whole batch and is reported as onConflict.
func (r recordStore) createBudgets(rows []models.Budget, onConflict *apperrors.AppError) ([]models.Budget, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Wrap(onConflict, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}
