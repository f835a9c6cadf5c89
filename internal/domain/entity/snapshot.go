package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletSnapshot is a cached balance checkpoint for a wallet.
//
// Balance is the wallet's true balance at the end (23:59:59) of SnapshotDate:
// current balance = snapshot balance + sum of transactions dated after
// SnapshotDate. Any retroactive write dated on or before SnapshotDate makes
// the snapshot stale; stale snapshots must be deleted, never trusted.
type WalletSnapshot struct {
	ID           uuid.UUID
	WalletID     uuid.UUID
	SnapshotDate time.Time
	Balance      decimal.Decimal
	CreatedAt    time.Time
}

// NewWalletSnapshot creates a new WalletSnapshot entity.
func NewWalletSnapshot(walletID uuid.UUID, snapshotDate time.Time, balance decimal.Decimal) *WalletSnapshot {
	return &WalletSnapshot{
		ID:           uuid.New(),
		WalletID:     walletID,
		SnapshotDate: DateOf(snapshotDate),
		Balance:      balance,
		CreatedAt:    time.Now().UTC(),
	}
}
