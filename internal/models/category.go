package models

// CategoryType restricts which transaction types a category may carry.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeBoth    CategoryType = "both"
)

// Category groups transactions and is the unit budgets are set against.
// Default categories are seeded by the system; their name and type are fixed.
type Category struct {
	Base
	Name      string       `gorm:"not null;uniqueIndex:uq_categories_name" json:"name"`
	Color     string       `gorm:"size:7;not null" json:"color"`
	Icon      *string      `json:"icon,omitempty"`
	Type      CategoryType `gorm:"not null" json:"type"`
	IsDefault bool         `gorm:"not null;default:false" json:"is_default"`
}

// AcceptsExpenses reports whether budgets may be set against the category.
func (c *Category) AcceptsExpenses() bool {
	return c.Type == CategoryTypeExpense || c.Type == CategoryTypeBoth
}

// DefaultCategories are the system-seeded categories.
var DefaultCategories = []Category{
	{Name: "Salary", Color: "#22c55e", Type: CategoryTypeIncome, IsDefault: true},
	{Name: "Food", Color: "#f97316", Type: CategoryTypeExpense, IsDefault: true},
	{Name: "Housing", Color: "#3b82f6", Type: CategoryTypeExpense, IsDefault: true},
	{Name: "Transport", Color: "#eab308", Type: CategoryTypeExpense, IsDefault: true},
	{Name: "Health", Color: "#ef4444", Type: CategoryTypeExpense, IsDefault: true},
	{Name: "Leisure", Color: "#a855f7", Type: CategoryTypeExpense, IsDefault: true},
	{Name: "Other", Color: "#6b7280", Type: CategoryTypeBoth, IsDefault: true},
}
