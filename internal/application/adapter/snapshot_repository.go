package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// SnapshotRepository defines the interface for wallet snapshot persistence.
type SnapshotRepository interface {
	// Create creates a new snapshot.
	Create(ctx context.Context, snapshot *entity.WalletSnapshot) error

	// LatestOnOrBefore retrieves the wallet's most recent snapshot with
	// snapshot_date <= date. Returns (nil, nil) when no such snapshot exists;
	// the absence of a checkpoint is a normal state, not an error.
	LatestOnOrBefore(ctx context.Context, walletID uuid.UUID, date time.Time) (*entity.WalletSnapshot, error)

	// DeleteFrom deletes every snapshot for the wallet with
	// snapshot_date >= from and returns the number deleted. This is the
	// invalidation primitive: it must run in the same unit of work as the
	// mutation that staled the snapshots.
	DeleteFrom(ctx context.Context, walletID uuid.UUID, from time.Time) (int64, error)

	// FindByWallet retrieves all snapshots for a wallet ordered by date.
	FindByWallet(ctx context.Context, walletID uuid.UUID) ([]*entity.WalletSnapshot, error)
}
