package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "budgetdash/internal/errors"
	"budgetdash/internal/finance"
	"budgetdash/internal/models"
	"budgetdash/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db    *gorm.DB
	store recordStore
	loc   *time.Location
}

// NewTransactionService creates a new TransactionServicer. Month filters and
// available months are computed in loc.
func NewTransactionService(db *gorm.DB, loc *time.Location) TransactionServicer {
	if loc == nil {
		loc = time.UTC
	}
	return &transactionService{
		db:    db,
		store: recordStore{db: db},
		loc:   loc,
	}
}

// CreateTransaction records a new income or expense.
func (s *transactionService) CreateTransaction(input TransactionInput) (*models.Transaction, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		Description: input.Description,
		Amount:      input.Amount,
		Date:        input.Date.UTC(),
		Type:        input.Type,
		CategoryID:  input.CategoryID,
		Notes:       input.Notes,
		Tag:         input.Tag,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetTransactionByID(transaction.ID)
}

// ListTransactions retrieves a paginated, filtered list of transactions, newest first.
func (s *transactionService) ListTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	base := s.applyTransactionFilters(s.db.Model(&models.Transaction{}), filter)

	result, err := pagination.Find[models.Transaction](base, page,
		withCategory, pagination.OrderBy("date DESC", "id DESC"))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

func (s *transactionService) applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.Month != nil {
		w := f.Month.Window(s.loc)
		q = q.Where("date BETWEEN ? AND ?", w.Start.UTC(), w.End.UTC())
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	return q
}

// GetTransactionByID retrieves a live transaction with its category.
func (s *transactionService) GetTransactionByID(transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Scopes(withCategory).Where("id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction replaces every writable field of a transaction.
func (s *transactionService) UpdateTransaction(transactionID string, input TransactionInput) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	// Explicit Select so clearing notes or tag is persisted too.
	transaction.Description = input.Description
	transaction.Amount = input.Amount
	transaction.Date = input.Date.UTC()
	transaction.Type = input.Type
	transaction.CategoryID = input.CategoryID
	transaction.Notes = input.Notes
	transaction.Tag = input.Tag
	transaction.Category = nil

	if err := s.db.Model(transaction).
		Select("description", "amount", "date", "type", "category_id", "notes", "tag").
		Updates(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetTransactionByID(transactionID)
}

// DeleteTransaction soft-deletes a transaction. It drops out of every
// later aggregation immediately.
func (s *transactionService) DeleteTransaction(transactionID string) error {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// AvailableMonths returns the distinct month keys that hold at least one
// transaction, newest first.
func (s *transactionService) AvailableMonths() ([]string, error) {
	var dates []time.Time
	if err := s.db.Model(&models.Transaction{}).Pluck("date", &dates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	seen := make(map[string]struct{}, len(dates))
	months := make([]string, 0)
	for _, d := range dates {
		key := finance.MonthKeyOf(d.In(s.loc)).String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		months = append(months, key)
	}
	// "YYYY-MM" sorts lexically in chronological order.
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months, nil
}

func (s *transactionService) validateInput(input *TransactionInput) error {
	input.Description = strings.TrimSpace(input.Description)
	if input.Description == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if !input.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if input.Type != models.TransactionTypeIncome && input.Type != models.TransactionTypeExpense {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	if input.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	category, err := s.store.getCategory(input.CategoryID)
	if err != nil {
		return err
	}
	if category.Type != models.CategoryTypeBoth && string(category.Type) != string(input.Type) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			"category "+category.Name+" does not accept "+string(input.Type)+" transactions")
	}
	return nil
}
