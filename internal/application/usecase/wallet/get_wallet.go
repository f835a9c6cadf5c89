package wallet

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/application/ledger"
)

// GetWalletInput represents the input for wallet retrieval.
type GetWalletInput struct {
	WalletID uuid.UUID
}

// GetWalletOutput represents the output of wallet retrieval.
type GetWalletOutput struct {
	Wallet WalletWithBalance
}

// GetWalletUseCase handles single-wallet retrieval with balance.
type GetWalletUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
	cfg   ledger.Config
}

// NewGetWalletUseCase creates a new GetWalletUseCase instance.
func NewGetWalletUseCase(uow adapter.UnitOfWork, clock adapter.Clock, cfg ledger.Config) *GetWalletUseCase {
	return &GetWalletUseCase{
		uow:   uow,
		clock: clock,
		cfg:   cfg,
	}
}

// Execute retrieves a wallet and its present-day balance.
func (uc *GetWalletUseCase) Execute(ctx context.Context, input GetWalletInput) (*GetWalletOutput, error) {
	var out GetWalletOutput

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		engine := ledger.NewEngine(repos, uc.clock, uc.cfg)

		wallet, err := repos.Wallets.FindByID(ctx, input.WalletID)
		if err != nil {
			return err
		}

		balance, err := engine.Balance(ctx, wallet, engine.Today(), true)
		if err != nil {
			return fmt.Errorf("failed to compute balance: %w", err)
		}

		out.Wallet = WalletWithBalance{Wallet: wallet, Balance: balance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}
