package wallet

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/application/ledger"
	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// WalletWithBalance pairs a wallet with its present-day balance.
type WalletWithBalance struct {
	Wallet  *entity.Wallet
	Balance decimal.Decimal
}

// ListWalletsOutput represents the output of wallet listing.
type ListWalletsOutput struct {
	Wallets []WalletWithBalance
}

// ListWalletsUseCase handles wallet listing with balances.
type ListWalletsUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
	cfg   ledger.Config
}

// NewListWalletsUseCase creates a new ListWalletsUseCase instance.
func NewListWalletsUseCase(uow adapter.UnitOfWork, clock adapter.Clock, cfg ledger.Config) *ListWalletsUseCase {
	return &ListWalletsUseCase{
		uow:   uow,
		clock: clock,
		cfg:   cfg,
	}
}

// Execute lists all wallets with their current balances. Listing is a
// present-day query, so it may refresh stale snapshot checkpoints as a side
// effect; the whole pass runs in one unit of work.
func (uc *ListWalletsUseCase) Execute(ctx context.Context) (*ListWalletsOutput, error) {
	var out []WalletWithBalance

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		engine := ledger.NewEngine(repos, uc.clock, uc.cfg)

		wallets, err := repos.Wallets.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to list wallets: %w", err)
		}

		out = make([]WalletWithBalance, 0, len(wallets))
		for _, w := range wallets {
			balance, err := engine.Balance(ctx, w, engine.Today(), true)
			if err != nil {
				return fmt.Errorf("failed to compute balance for wallet %s: %w", w.ID, err)
			}
			out = append(out, WalletWithBalance{Wallet: w, Balance: balance})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ListWalletsOutput{Wallets: out}, nil
}
