package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category groups transactions for reporting.
type Category struct {
	ID        uuid.UUID
	Name      string
	Emoji     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(name, emoji string) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Emoji:     emoji,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Subcategory is a second-level grouping under a category.
type Subcategory struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	Name       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewSubcategory creates a new Subcategory entity.
func NewSubcategory(categoryID uuid.UUID, name string) *Subcategory {
	now := time.Now().UTC()

	return &Subcategory{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Name:       name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
