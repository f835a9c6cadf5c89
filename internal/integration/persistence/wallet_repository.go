// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
	"github.com/wallet-ledger/backend/internal/integration/persistence/model"
)

// walletRepository implements the adapter.WalletRepository interface.
type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository instance.
func NewWalletRepository(db *gorm.DB) adapter.WalletRepository {
	return &walletRepository{
		db: db,
	}
}

// Create creates a new wallet in the database.
func (r *walletRepository) Create(ctx context.Context, wallet *entity.Wallet) error {
	walletModel := model.WalletFromEntity(wallet)
	result := r.db.WithContext(ctx).Create(walletModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a wallet by its ID.
func (r *walletRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Wallet, error) {
	var walletModel model.WalletModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&walletModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrWalletNotFound
		}
		return nil, result.Error
	}
	return walletModel.ToEntity(), nil
}

// FindByName retrieves a wallet by its unique name.
func (r *walletRepository) FindByName(ctx context.Context, name string) (*entity.Wallet, error) {
	var walletModel model.WalletModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&walletModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrWalletNotFound
		}
		return nil, result.Error
	}
	return walletModel.ToEntity(), nil
}

// FindAll retrieves all wallets ordered by creation time.
func (r *walletRepository) FindAll(ctx context.Context) ([]*entity.Wallet, error) {
	var walletModels []model.WalletModel
	result := r.db.WithContext(ctx).Order("created_at ASC").Find(&walletModels)
	if result.Error != nil {
		return nil, result.Error
	}

	wallets := make([]*entity.Wallet, len(walletModels))
	for i, wm := range walletModels {
		wallets[i] = wm.ToEntity()
	}
	return wallets, nil
}

// Update persists changes to an existing wallet.
func (r *walletRepository) Update(ctx context.Context, wallet *entity.Wallet) error {
	walletModel := model.WalletFromEntity(wallet)
	result := r.db.WithContext(ctx).Model(&model.WalletModel{}).
		Where("id = ?", wallet.ID).
		Select("name", "type", "credit_limit", "emoji", "updated_at").
		Updates(walletModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrWalletNotFound
	}
	return nil
}

// Delete removes a wallet. Owned transactions and snapshots cascade.
func (r *walletRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.WalletModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrWalletNotFound
	}
	return nil
}
