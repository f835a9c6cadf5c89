package dto

import (
	"github.com/wallet-ledger/backend/internal/application/usecase/category"
	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Emoji string `json:"emoji,omitempty"`
}

// CreateSubcategoryRequest represents the request body for subcategory creation.
type CreateSubcategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// SubcategoryResponse represents a subcategory in API responses.
type SubcategoryResponse struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
}

// CategoryResponse represents a category with its subcategories.
type CategoryResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Emoji         string                `json:"emoji"`
	Subcategories []SubcategoryResponse `json:"subcategories"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToSubcategoryResponse converts a subcategory entity to a response DTO.
func ToSubcategoryResponse(sub *entity.Subcategory) SubcategoryResponse {
	return SubcategoryResponse{
		ID:         sub.ID.String(),
		CategoryID: sub.CategoryID.String(),
		Name:       sub.Name,
	}
}

// ToCategoryListResponse converts a ListCategoriesOutput to a list response.
func ToCategoryListResponse(output *category.ListCategoriesOutput) CategoryListResponse {
	categories := make([]CategoryResponse, len(output.Categories))
	for i, c := range output.Categories {
		subs := make([]SubcategoryResponse, len(c.Subcategories))
		for j, sub := range c.Subcategories {
			subs[j] = ToSubcategoryResponse(sub)
		}
		categories[i] = CategoryResponse{
			ID:            c.Category.ID.String(),
			Name:          c.Category.Name,
			Emoji:         c.Category.Emoji,
			Subcategories: subs,
		}
	}
	return CategoryListResponse{Categories: categories}
}
