package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// LinkedEntryModel represents the linked_entries table in the database.
type LinkedEntryModel struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primaryKey"`
	LinkType             string           `gorm:"type:varchar(20);not null;index"`
	PrimaryTransactionID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex"`
	CounterpartyName     string           `gorm:"type:varchar(200);not null;index"`
	TotalAmount          decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	UserAmount           *decimal.Decimal `gorm:"type:decimal(12,2)"`
	PendingAmount        decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Status               string           `gorm:"type:varchar(10);not null;index"`
	Notes                string           `gorm:"type:varchar(1000)"`
	CreatedAt            time.Time        `gorm:"not null"`
	UpdatedAt            time.Time        `gorm:"not null"`

	PrimaryTransaction *TransactionModel        `gorm:"foreignKey:PrimaryTransactionID;references:ID"`
	LinkedTransactions []LinkedTransactionModel `gorm:"foreignKey:LinkedEntryID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the LinkedEntryModel.
func (LinkedEntryModel) TableName() string {
	return "linked_entries"
}

// ToEntity converts a LinkedEntryModel to a domain LinkedEntry entity.
func (m *LinkedEntryModel) ToEntity() *entity.LinkedEntry {
	return &entity.LinkedEntry{
		ID:                   m.ID,
		LinkType:             entity.LinkType(m.LinkType),
		PrimaryTransactionID: m.PrimaryTransactionID,
		CounterpartyName:     m.CounterpartyName,
		TotalAmount:          m.TotalAmount,
		UserAmount:           m.UserAmount,
		PendingAmount:        m.PendingAmount,
		Status:               entity.LinkStatus(m.Status),
		Notes:                m.Notes,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// LinkedEntryFromEntity creates a LinkedEntryModel from a domain LinkedEntry entity.
func LinkedEntryFromEntity(entry *entity.LinkedEntry) *LinkedEntryModel {
	return &LinkedEntryModel{
		ID:                   entry.ID,
		LinkType:             string(entry.LinkType),
		PrimaryTransactionID: entry.PrimaryTransactionID,
		CounterpartyName:     entry.CounterpartyName,
		TotalAmount:          entry.TotalAmount,
		UserAmount:           entry.UserAmount,
		PendingAmount:        entry.PendingAmount,
		Status:               string(entry.Status),
		Notes:                entry.Notes,
		CreatedAt:            entry.CreatedAt,
		UpdatedAt:            entry.UpdatedAt,
	}
}

// LinkedTransactionModel represents the linked_transactions table: the join
// between a settling transaction and its entry. No amount column exists here;
// the settled amount is always the transaction's own amount.
type LinkedTransactionModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	LinkedEntryID uuid.UUID `gorm:"type:uuid;not null;index"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt     time.Time `gorm:"not null"`

	Transaction *TransactionModel `gorm:"foreignKey:TransactionID;references:ID"`
}

// TableName returns the table name for the LinkedTransactionModel.
func (LinkedTransactionModel) TableName() string {
	return "linked_transactions"
}

// ToEntity converts a LinkedTransactionModel to a domain LinkedTransaction entity.
func (m *LinkedTransactionModel) ToEntity() *entity.LinkedTransaction {
	return &entity.LinkedTransaction{
		ID:            m.ID,
		LinkedEntryID: m.LinkedEntryID,
		TransactionID: m.TransactionID,
		CreatedAt:     m.CreatedAt,
	}
}

// LinkedTransactionFromEntity creates a LinkedTransactionModel from a domain entity.
func LinkedTransactionFromEntity(link *entity.LinkedTransaction) *LinkedTransactionModel {
	return &LinkedTransactionModel{
		ID:            link.ID,
		LinkedEntryID: link.LinkedEntryID,
		TransactionID: link.TransactionID,
		CreatedAt:     link.CreatedAt,
	}
}
