package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// WalletRepository defines the interface for wallet persistence operations.
type WalletRepository interface {
	// Create creates a new wallet.
	Create(ctx context.Context, wallet *entity.Wallet) error

	// FindByID retrieves a wallet by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Wallet, error)

	// FindByName retrieves a wallet by its unique name.
	FindByName(ctx context.Context, name string) (*entity.Wallet, error)

	// FindAll retrieves all wallets ordered by creation time.
	FindAll(ctx context.Context) ([]*entity.Wallet, error)

	// Update persists changes to an existing wallet.
	Update(ctx context.Context, wallet *entity.Wallet) error

	// Delete removes a wallet. Owned transactions and snapshots cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}
