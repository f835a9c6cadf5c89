package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// WalletSnapshotModel represents the wallet_snapshots table in the database.
type WalletSnapshotModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WalletID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	SnapshotDate time.Time       `gorm:"type:date;not null;index"`
	Balance      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the WalletSnapshotModel.
func (WalletSnapshotModel) TableName() string {
	return "wallet_snapshots"
}

// ToEntity converts a WalletSnapshotModel to a domain WalletSnapshot entity.
func (m *WalletSnapshotModel) ToEntity() *entity.WalletSnapshot {
	return &entity.WalletSnapshot{
		ID:           m.ID,
		WalletID:     m.WalletID,
		SnapshotDate: entity.DateOf(m.SnapshotDate),
		Balance:      m.Balance,
		CreatedAt:    m.CreatedAt,
	}
}

// SnapshotFromEntity creates a WalletSnapshotModel from a domain WalletSnapshot entity.
func SnapshotFromEntity(snapshot *entity.WalletSnapshot) *WalletSnapshotModel {
	return &WalletSnapshotModel{
		ID:           snapshot.ID,
		WalletID:     snapshot.WalletID,
		SnapshotDate: snapshot.SnapshotDate,
		Balance:      snapshot.Balance,
		CreatedAt:    snapshot.CreatedAt,
	}
}
