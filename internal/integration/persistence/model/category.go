package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Emoji     string    `gorm:"type:varchar(10)"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Subcategories []SubcategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:        m.ID,
		Name:      m.Name,
		Emoji:     m.Emoji,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:        category.ID,
		Name:      category.Name,
		Emoji:     category.Emoji,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// SubcategoryModel represents the subcategories table in the database.
type SubcategoryModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(100);not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the SubcategoryModel.
func (SubcategoryModel) TableName() string {
	return "subcategories"
}

// ToEntity converts a SubcategoryModel to a domain Subcategory entity.
func (m *SubcategoryModel) ToEntity() *entity.Subcategory {
	return &entity.Subcategory{
		ID:         m.ID,
		CategoryID: m.CategoryID,
		Name:       m.Name,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// SubcategoryFromEntity creates a SubcategoryModel from a domain Subcategory entity.
func SubcategoryFromEntity(subcategory *entity.Subcategory) *SubcategoryModel {
	return &SubcategoryModel{
		ID:         subcategory.ID,
		CategoryID: subcategory.CategoryID,
		Name:       subcategory.Name,
		CreatedAt:  subcategory.CreatedAt,
		UpdatedAt:  subcategory.UpdatedAt,
	}
}
