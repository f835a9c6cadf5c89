package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
	"github.com/wallet-ledger/backend/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	return r.db.WithContext(ctx).Create(categoryModel).Error
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindAll retrieves all categories ordered by name.
func (r *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	result := r.db.WithContext(ctx).Order("name ASC").Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i, cm := range categoryModels {
		categories[i] = cm.ToEntity()
	}
	return categories, nil
}

// CreateSubcategory creates a new subcategory in the database.
func (r *categoryRepository) CreateSubcategory(ctx context.Context, subcategory *entity.Subcategory) error {
	subcategoryModel := model.SubcategoryFromEntity(subcategory)
	return r.db.WithContext(ctx).Create(subcategoryModel).Error
}

// FindSubcategoryByID retrieves a subcategory by its ID.
func (r *categoryRepository) FindSubcategoryByID(ctx context.Context, id uuid.UUID) (*entity.Subcategory, error) {
	var subcategoryModel model.SubcategoryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&subcategoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSubcategoryNotFound
		}
		return nil, result.Error
	}
	return subcategoryModel.ToEntity(), nil
}

// FindSubcategoriesByCategory retrieves all subcategories of a category.
func (r *categoryRepository) FindSubcategoriesByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entity.Subcategory, error) {
	var subcategoryModels []model.SubcategoryModel
	result := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&subcategoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	subcategories := make([]*entity.Subcategory, len(subcategoryModels))
	for i, sm := range subcategoryModels {
		subcategories[i] = sm.ToEntity()
	}
	return subcategories, nil
}
