// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name  string
	Emoji string
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	uow adapter.UnitOfWork
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(uow adapter.UnitOfWork) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		uow: uow,
	}
}

// Execute creates a category.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	category := entity.NewCategory(input.Name, input.Emoji)
	if err := uc.uow.Repos().Categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &CreateCategoryOutput{Category: category}, nil
}

// CreateSubcategoryInput represents the input for subcategory creation.
type CreateSubcategoryInput struct {
	CategoryID uuid.UUID
	Name       string
}

// CreateSubcategoryOutput represents the output of subcategory creation.
type CreateSubcategoryOutput struct {
	Subcategory *entity.Subcategory
}

// CreateSubcategoryUseCase handles subcategory creation logic.
type CreateSubcategoryUseCase struct {
	uow adapter.UnitOfWork
}

// NewCreateSubcategoryUseCase creates a new CreateSubcategoryUseCase instance.
func NewCreateSubcategoryUseCase(uow adapter.UnitOfWork) *CreateSubcategoryUseCase {
	return &CreateSubcategoryUseCase{
		uow: uow,
	}
}

// Execute creates a subcategory under an existing category.
func (uc *CreateSubcategoryUseCase) Execute(ctx context.Context, input CreateSubcategoryInput) (*CreateSubcategoryOutput, error) {
	var out CreateSubcategoryOutput

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		if _, err := repos.Categories.FindByID(ctx, input.CategoryID); err != nil {
			return err
		}

		subcategory := entity.NewSubcategory(input.CategoryID, input.Name)
		if err := repos.Categories.CreateSubcategory(ctx, subcategory); err != nil {
			return fmt.Errorf("failed to create subcategory: %w", err)
		}

		out.Subcategory = subcategory
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// CategoryWithSubcategories pairs a category with its subcategories.
type CategoryWithSubcategories struct {
	Category      *entity.Category
	Subcategories []*entity.Subcategory
}

// ListCategoriesOutput represents the output of category listing.
type ListCategoriesOutput struct {
	Categories []CategoryWithSubcategories
}

// ListCategoriesUseCase handles category listing with subcategories.
type ListCategoriesUseCase struct {
	uow adapter.UnitOfWork
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(uow adapter.UnitOfWork) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		uow: uow,
	}
}

// Execute lists all categories with their subcategories.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context) (*ListCategoriesOutput, error) {
	repos := uc.uow.Repos()

	categories, err := repos.Categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	out := ListCategoriesOutput{Categories: make([]CategoryWithSubcategories, 0, len(categories))}
	for _, c := range categories {
		subcategories, err := repos.Categories.FindSubcategoriesByCategory(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list subcategories: %w", err)
		}
		out.Categories = append(out.Categories, CategoryWithSubcategories{
			Category:      c,
			Subcategories: subcategories,
		})
	}

	return &out, nil
}
