package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	FindAll(ctx context.Context) ([]*entity.Category, error)

	CreateSubcategory(ctx context.Context, subcategory *entity.Subcategory) error
	FindSubcategoryByID(ctx context.Context, id uuid.UUID) (*entity.Subcategory, error)
	FindSubcategoriesByCategory(ctx context.Context, categoryID uuid.UUID) ([]*entity.Subcategory, error)
}
