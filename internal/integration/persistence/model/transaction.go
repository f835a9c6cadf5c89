package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Date           time.Time       `gorm:"type:date;not null;index"`
	TimeOfDay      *string         `gorm:"type:varchar(8)"`
	WalletID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Direction      string          `gorm:"type:varchar(10);not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Classification string          `gorm:"type:varchar(20);not null;index"`
	Description    string          `gorm:"type:varchar(500)"`
	CategoryID     *uuid.UUID      `gorm:"type:uuid;index"`
	SubcategoryID  *uuid.UUID      `gorm:"type:uuid;index"`

	// Self-reference to the other half of a wallet transfer. A plain
	// back-reference, not an owning pointer: deletion clears the peer's
	// column first to avoid dangling references.
	PairedTransactionID *uuid.UUID `gorm:"type:uuid"`

	IsIgnored     bool      `gorm:"not null;default:false;index"`
	IsCalibration bool      `gorm:"not null;default:false;index"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Wallet            *WalletModel      `gorm:"foreignKey:WalletID;references:ID"`
	Category          *CategoryModel    `gorm:"foreignKey:CategoryID;references:ID"`
	Subcategory       *SubcategoryModel `gorm:"foreignKey:SubcategoryID;references:ID"`
	PairedTransaction *TransactionModel `gorm:"foreignKey:PairedTransactionID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:                  m.ID,
		Date:                entity.DateOf(m.Date),
		TimeOfDay:           m.TimeOfDay,
		WalletID:            m.WalletID,
		Direction:           entity.TransactionDirection(m.Direction),
		Amount:              m.Amount,
		Classification:      entity.TransactionClassification(m.Classification),
		Description:         m.Description,
		CategoryID:          m.CategoryID,
		SubcategoryID:       m.SubcategoryID,
		PairedTransactionID: m.PairedTransactionID,
		IsIgnored:           m.IsIgnored,
		IsCalibration:       m.IsCalibration,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:                  transaction.ID,
		Date:                transaction.Date,
		TimeOfDay:           transaction.TimeOfDay,
		WalletID:            transaction.WalletID,
		Direction:           string(transaction.Direction),
		Amount:              transaction.Amount,
		Classification:      string(transaction.Classification),
		Description:         transaction.Description,
		CategoryID:          transaction.CategoryID,
		SubcategoryID:       transaction.SubcategoryID,
		PairedTransactionID: transaction.PairedTransactionID,
		IsIgnored:           transaction.IsIgnored,
		IsCalibration:       transaction.IsCalibration,
		CreatedAt:           transaction.CreatedAt,
		UpdatedAt:           transaction.UpdatedAt,
	}
}
