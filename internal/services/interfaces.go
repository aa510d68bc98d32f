package services

import (
	"time"

	"github.com/shopspring/decimal"

	"budgetdash/internal/finance"
	"budgetdash/internal/models"
	"budgetdash/internal/pagination"
)

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string, categoryType models.CategoryType, color string, icon *string) (*models.Category, error)
	ListCategories(categoryType *models.CategoryType) ([]models.Category, error)
	GetCategoryByID(categoryID string) (*models.Category, error)
	UpdateCategory(categoryID string, name, color string, icon *string, categoryType *models.CategoryType) (*models.Category, error)
	DeleteCategory(categoryID string) error
	SeedDefaultCategories() (int, error)
}

// TransactionInput carries the writable fields of a transaction.
type TransactionInput struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Type        models.TransactionType
	CategoryID  string
	Notes       *string
	Tag         *models.TransactionTag
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Month      *finance.MonthKey
	Type       *models.TransactionType
	CategoryID *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(input TransactionInput) (*models.Transaction, error)
	ListTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(transactionID string) (*models.Transaction, error)
	UpdateTransaction(transactionID string, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(transactionID string) error
	AvailableMonths() ([]string, error)
}

// BudgetInput carries the fields of a new budget. Exactly one shape must be
// set: BudgetMonth, or Period with StartDate (EndDate optional).
type BudgetInput struct {
	Amount      decimal.Decimal
	CategoryID  string
	BudgetMonth *string
	Period      *models.BudgetPeriod
	StartDate   *time.Time
	EndDate     *time.Time
}

// BudgetUpdate carries the optional fields of a budget update. Shape fields
// must match the budget's existing shape.
type BudgetUpdate struct {
	Amount      *decimal.Decimal
	CategoryID  *string
	BudgetMonth *string
	Period      *models.BudgetPeriod
	StartDate   *time.Time
	EndDate     *time.Time
}

// BudgetFilter holds optional filter parameters for listing budgets.
type BudgetFilter struct {
	Month      *finance.MonthKey
	CategoryID *string
}

// BudgetProgress is a budget's consumption over the window it resolves to.
type BudgetProgress struct {
	BudgetID      string               `json:"budget_id"`
	CategoryID    string               `json:"category_id"`
	CategoryName  string               `json:"category_name"`
	CategoryColor string               `json:"category_color"`
	BudgetMonth   *string              `json:"budget_month,omitempty"`
	Period        *models.BudgetPeriod `json:"period,omitempty"`
	StartDate     time.Time            `json:"start_date"`
	EndDate       time.Time            `json:"end_date"`
	Remaining     decimal.Decimal      `json:"remaining"`
	finance.Progress
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(input BudgetInput) (*models.Budget, error)
	ListBudgets(page pagination.PageRequest, filter BudgetFilter) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(budgetID string) (*models.Budget, error)
	UpdateBudget(budgetID string, update BudgetUpdate) (*models.Budget, error)
	DeleteBudget(budgetID string) error
	GetBudgetProgress(budgetID string, ref time.Time) (*BudgetProgress, error)
	ReplicateBudgets(targetMonth string) ([]models.Budget, error)
}

// DashboardServicer defines the contract for building the monthly dashboard.
type DashboardServicer interface {
	GetDashboard(target finance.MonthKey, ref time.Time) (*finance.DashboardSummary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
