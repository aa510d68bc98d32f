package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "budgetdash/internal/errors"
	"budgetdash/internal/logger"
	"budgetdash/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db    *gorm.DB
	store recordStore
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db, store: recordStore{db: db}}
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(
	name string,
	categoryType models.CategoryType,
	color string,
	icon *string,
) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	if err := s.ensureNameAvailable(name, ""); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:  name,
		Type:  categoryType,
		Color: color,
		Icon:  icon,
	}

	if err := s.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateCategory, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// ListCategories returns all categories ordered by name. Filtering by income
// or expense also includes categories of type both.
func (s *categoryService) ListCategories(categoryType *models.CategoryType) ([]models.Category, error) {
	query := s.db.Model(&models.Category{})
	if categoryType != nil {
		if *categoryType == models.CategoryTypeBoth {
			query = query.Where("type = ?", models.CategoryTypeBoth)
		} else {
			query = query.Where("type IN ?", []models.CategoryType{*categoryType, models.CategoryTypeBoth})
		}
	}

	categories := []models.Category{}
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID
func (s *categoryService) GetCategoryByID(categoryID string) (*models.Category, error) {
	return s.store.getCategory(categoryID)
}

// UpdateCategory applies the non-empty fields. Name and type of a default
// category are left untouched.
func (s *categoryService) UpdateCategory(
	categoryID string,
	name string,
	color string,
	icon *string,
	categoryType *models.CategoryType,
) (*models.Category, error) {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	name = strings.TrimSpace(name)
	if name != "" && name != category.Name && !category.IsDefault {
		if err := s.ensureNameAvailable(name, category.ID); err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if categoryType != nil && !category.IsDefault {
		updates["type"] = *categoryType
	}
	if color != "" {
		updates["color"] = color
	}
	if icon != nil {
		updates["icon"] = icon
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.Wrap(apperrors.ErrDuplicateCategory, err)
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteCategory permanently removes a category that nothing references.
// Soft-deleted transactions still count as references.
func (s *categoryService) DeleteCategory(categoryID string) error {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return err
	}

	if category.IsDefault {
		return apperrors.ErrDefaultCategory
	}

	var txCount int64
	if err := s.db.Unscoped().Model(&models.Transaction{}).
		Where("category_id = ?", categoryID).
		Count(&txCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgetCount int64
	if err := s.db.Model(&models.Budget{}).
		Where("category_id = ?", categoryID).
		Count(&budgetCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if txCount > 0 || budgetCount > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.Unscoped().Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SeedDefaultCategories inserts the missing system categories and returns
// how many were created. Existing rows, matched by name, are left as is.
func (s *categoryService) SeedDefaultCategories() (int, error) {
	created := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, def := range models.DefaultCategories {
			var count int64
			if err := tx.Model(&models.Category{}).Where("name = ?", def.Name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			category := def
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("seeded default categories", "created", created)
	return created, nil
}

func (s *categoryService) ensureNameAvailable(name, exceptID string) error {
	query := s.db.Model(&models.Category{}).Where("name = ?", name)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateCategory
	}
	return nil
}
