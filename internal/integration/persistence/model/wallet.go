// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// WalletModel represents the wallets table in the database.
type WalletModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Type        string          `gorm:"type:varchar(10);not null;index"`
	CreditLimit decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Emoji       string          `gorm:"type:varchar(10)"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	// Owned rows; deleting a wallet cascades to both.
	Transactions []TransactionModel    `gorm:"foreignKey:WalletID;constraint:OnDelete:CASCADE"`
	Snapshots    []WalletSnapshotModel `gorm:"foreignKey:WalletID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the WalletModel.
func (WalletModel) TableName() string {
	return "wallets"
}

// ToEntity converts a WalletModel to a domain Wallet entity.
func (m *WalletModel) ToEntity() *entity.Wallet {
	return &entity.Wallet{
		ID:          m.ID,
		Name:        m.Name,
		Type:        entity.WalletType(m.Type),
		CreditLimit: m.CreditLimit,
		Emoji:       m.Emoji,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// WalletFromEntity creates a WalletModel from a domain Wallet entity.
func WalletFromEntity(wallet *entity.Wallet) *WalletModel {
	return &WalletModel{
		ID:          wallet.ID,
		Name:        wallet.Name,
		Type:        string(wallet.Type),
		CreditLimit: wallet.CreditLimit,
		Emoji:       wallet.Emoji,
		CreatedAt:   wallet.CreatedAt,
		UpdatedAt:   wallet.UpdatedAt,
	}
}
