package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "budgetdash/internal/errors"
	"budgetdash/internal/finance"
	"budgetdash/internal/logger"
	"budgetdash/internal/models"
	"budgetdash/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db    *gorm.DB
	store recordStore
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db, store: recordStore{db: db}}
}

// CreateBudget creates a month-keyed or range-keyed budget for an expense category.
func (s *budgetService) CreateBudget(input BudgetInput) (*models.Budget, error) {
	budget := &models.Budget{
		Amount:      input.Amount,
		CategoryID:  input.CategoryID,
		BudgetMonth: input.BudgetMonth,
		Period:      input.Period,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
	if err := validateBudget(budget); err != nil {
		return nil, err
	}
	if _, err := s.budgetCategory(budget.CategoryID); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(budget, ""); err != nil {
		return nil, err
	}

	rows, err := s.store.createBudgets([]models.Budget{*budget}, apperrors.ErrDuplicateBudget)
	if err != nil {
		return nil, err
	}

	return s.GetBudgetByID(rows[0].ID)
}

// ListBudgets returns a paginated list of budgets with optional filters.
func (s *budgetService) ListBudgets(page pagination.PageRequest, filter BudgetFilter) (*pagination.PageResponse[models.Budget], error) {
	base := s.db.Model(&models.Budget{})
	if filter.Month != nil {
		base = base.Where("budget_month = ?", filter.Month.String())
	}
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}

	result, err := pagination.Find[models.Budget](base, page,
		withCategory, pagination.OrderBy("created_at ASC", "id ASC"))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

// GetBudgetByID returns a budget with its category.
func (s *budgetService) GetBudgetByID(budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Scopes(withCategory).Where("id = ?", budgetID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget updates amount, category and the fields of the budget's own
// shape. Switching between month-keyed and range-keyed is rejected.
func (s *budgetService) UpdateBudget(budgetID string, update BudgetUpdate) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}

	if budget.IsMonthKeyed() && (update.Period != nil || update.StartDate != nil || update.EndDate != nil) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"a month budget cannot take period, start_date or end_date")
	}
	if !budget.IsMonthKeyed() && update.BudgetMonth != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"a period budget cannot take budget_month")
	}

	if update.Amount != nil {
		budget.Amount = *update.Amount
	}
	if update.CategoryID != nil && *update.CategoryID != budget.CategoryID {
		if _, err := s.budgetCategory(*update.CategoryID); err != nil {
			return nil, err
		}
		budget.CategoryID = *update.CategoryID
	}
	if update.BudgetMonth != nil {
		budget.BudgetMonth = update.BudgetMonth
	}
	if update.Period != nil {
		budget.Period = update.Period
	}
	if update.StartDate != nil {
		budget.StartDate = update.StartDate
	}
	if update.EndDate != nil {
		budget.EndDate = update.EndDate
	}

	if err := validateBudget(budget); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(budget, budget.ID); err != nil {
		return nil, err
	}

	budget.Category = nil
	if err := s.db.Model(budget).
		Select("amount", "category_id", "budget_month", "period", "start_date", "end_date").
		Updates(budget).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateBudget, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetBudgetByID(budgetID)
}

// DeleteBudget permanently removes a budget so its category and window can be reused.
func (s *budgetService) DeleteBudget(budgetID string) error {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Unscoped().Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBudgetProgress measures spending against a budget over the window it
// resolves to at ref.
func (s *budgetService) GetBudgetProgress(budgetID string, ref time.Time) (*BudgetProgress, error) {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}
	if budget.Category == nil {
		return nil, apperrors.WithMessage(apperrors.ErrCategoryNotFound,
			"budget "+budget.ID+" references a category that no longer exists")
	}

	d, err := finance.DescriptorOf(budget)
	if err != nil {
		return nil, err
	}
	w, err := finance.Resolve(d, ref)
	if err != nil {
		return nil, err
	}

	txs, err := s.store.listTransactions(transactionQuery{
		Window:     &w,
		CategoryID: budget.CategoryID,
		Type:       models.TransactionTypeExpense,
	})
	if err != nil {
		return nil, err
	}

	progress, err := finance.BudgetProgress(budget, txs, ref)
	if err != nil {
		logComputationError(err, "budget_id", budget.ID)
		return nil, err
	}

	return &BudgetProgress{
		BudgetID:      budget.ID,
		CategoryID:    budget.CategoryID,
		CategoryName:  budget.Category.Name,
		CategoryColor: budget.Category.Color,
		BudgetMonth:   budget.BudgetMonth,
		Period:        budget.Period,
		StartDate:     progress.Window.Start,
		EndDate:       progress.Window.End,
		Remaining:     progress.Max.Sub(progress.Current),
		Progress:      *progress,
	}, nil
}

// ReplicateBudgets copies every budget of the month before targetMonth into
// targetMonth. Nothing is written unless the whole set can be.
func (s *budgetService) ReplicateBudgets(targetMonth string) ([]models.Budget, error) {
	target, err := finance.ParseMonthKey(targetMonth)
	if err != nil {
		return nil, err
	}
	source := finance.ReplicationSource(target)

	var created []models.Budget
	err = s.db.Transaction(func(tx *gorm.DB) error {
		store := recordStore{db: tx}

		sourceBudgets, err := store.listBudgets(budgetQuery{Month: source.String()})
		if err != nil {
			return err
		}
		existing, err := store.listBudgets(budgetQuery{Month: target.String()})
		if err != nil {
			return err
		}

		rows, err := finance.PlanReplication(sourceBudgets, existing, target)
		if err != nil {
			return err
		}

		created, err = store.createBudgets(rows, apperrors.ErrBudgetMonthNotEmpty)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("replicated budgets",
		"source_month", source.String(),
		"target_month", target.String(),
		"count", len(created),
	)

	var budgets []models.Budget
	if err := s.db.Scopes(withCategory).
		Where("budget_month = ?", target.String()).
		Order("created_at ASC").
		Order("id ASC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// budgetCategory loads the category a budget is set against; it must exist
// and accept expenses.
func (s *budgetService) budgetCategory(categoryID string) (*models.Category, error) {
	category, err := s.store.getCategory(categoryID)
	if err != nil {
		return nil, err
	}
	if !category.AcceptsExpenses() {
		return nil, apperrors.ErrCategoryNotExpense
	}
	return category, nil
}

// ensureUnique rejects a second budget for the same category and window.
func (s *budgetService) ensureUnique(b *models.Budget, exceptID string) error {
	query := s.db.Model(&models.Budget{}).Where("category_id = ?", b.CategoryID)
	if b.IsMonthKeyed() {
		query = query.Where("budget_month = ?", *b.BudgetMonth)
	} else {
		query = query.Where("budget_month IS NULL AND period = ? AND start_date = ?", *b.Period, *b.StartDate)
	}
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateBudget
	}
	return nil
}

// validateBudget checks the amount and that exactly one shape is set.
func validateBudget(b *models.Budget) error {
	if b.Amount.IsNegative() || b.Amount.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	hasMonth := b.BudgetMonth != nil
	hasRange := b.Period != nil || b.StartDate != nil || b.EndDate != nil
	switch {
	case hasMonth && hasRange:
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			"provide either budget_month or period with start_date, not both")
	case !hasMonth && !hasRange:
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			"provide either budget_month or period with start_date")
	case hasMonth:
		key, err := finance.ParseMonthKey(*b.BudgetMonth)
		if err != nil {
			return err
		}
		normalized := key.String()
		b.BudgetMonth = &normalized
		return nil
	}

	if b.Period == nil || b.StartDate == nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "period and start_date are required together")
	}
	if _, err := finance.Resolve(finance.RangeDescriptor{Period: *b.Period, StartDate: *b.StartDate}, *b.StartDate); err != nil {
		return err
	}
	if b.EndDate != nil && b.EndDate.Before(*b.StartDate) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must not be before start_date")
	}
	start := b.StartDate.UTC()
	b.StartDate = &start
	if b.EndDate != nil {
		end := b.EndDate.UTC()
		b.EndDate = &end
	}
	return nil
}

// logComputationError records a non-finite aggregate; they are never expected.
func logComputationError(err error, keysAndValues ...interface{}) {
	if errors.Is(err, apperrors.ErrComputation) {
		fields := append([]interface{}{"error", errors.Unwrap(err)}, keysAndValues...)
		logger.Get().Errorw("computation error", fields...)
	}
}
