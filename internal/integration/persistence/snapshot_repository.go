package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	"github.com/wallet-ledger/backend/internal/integration/persistence/model"
)

// snapshotRepository implements the adapter.SnapshotRepository interface.
type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new snapshot repository instance.
func NewSnapshotRepository(db *gorm.DB) adapter.SnapshotRepository {
	return &snapshotRepository{
		db: db,
	}
}

// Create creates a new snapshot in the database.
func (r *snapshotRepository) Create(ctx context.Context, snapshot *entity.WalletSnapshot) error {
	snapshotModel := model.SnapshotFromEntity(snapshot)
	result := r.db.WithContext(ctx).Create(snapshotModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// LatestOnOrBefore retrieves the wallet's most recent snapshot with
// snapshot_date <= date, or nil when none exists.
func (r *snapshotRepository) LatestOnOrBefore(ctx context.Context, walletID uuid.UUID, date time.Time) (*entity.WalletSnapshot, error) {
	var snapshotModel model.WalletSnapshotModel
	result := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Where("snapshot_date <= ?", date).
		Order("snapshot_date DESC").
		First(&snapshotModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return snapshotModel.ToEntity(), nil
}

// DeleteFrom deletes every snapshot for the wallet with snapshot_date >= from.
func (r *snapshotRepository) DeleteFrom(ctx context.Context, walletID uuid.UUID, from time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Where("snapshot_date >= ?", from).
		Delete(&model.WalletSnapshotModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// FindByWallet retrieves all snapshots for a wallet ordered by date.
func (r *snapshotRepository) FindByWallet(ctx context.Context, walletID uuid.UUID) ([]*entity.WalletSnapshot, error) {
	var snapshotModels []model.WalletSnapshotModel
	result := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("snapshot_date ASC").
		Find(&snapshotModels)
	if result.Error != nil {
		return nil, result.Error
	}

	snapshots := make([]*entity.WalletSnapshot, len(snapshotModels))
	for i, sm := range snapshotModels {
		snapshots[i] = sm.ToEntity()
	}
	return snapshots, nil
}
