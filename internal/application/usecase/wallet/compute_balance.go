package wallet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/application/ledger"
	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// ComputeBalanceInput represents the input for balance computation. A nil
// AsOf defaults to today.
type ComputeBalanceInput struct {
	WalletID uuid.UUID
	AsOf     *time.Time
}

// ComputeBalanceOutput represents the output of balance computation.
type ComputeBalanceOutput struct {
	WalletID uuid.UUID
	AsOf     time.Time
	Balance  decimal.Decimal
}

// ComputeBalanceUseCase handles point-in-time balance queries.
type ComputeBalanceUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
	cfg   ledger.Config
}

// NewComputeBalanceUseCase creates a new ComputeBalanceUseCase instance.
func NewComputeBalanceUseCase(uow adapter.UnitOfWork, clock adapter.Clock, cfg ledger.Config) *ComputeBalanceUseCase {
	return &ComputeBalanceUseCase{
		uow:   uow,
		clock: clock,
		cfg:   cfg,
	}
}

// Execute computes the wallet balance as of the requested date. Only
// present-day queries are allowed to refresh the snapshot cache; historical
// probes leave it untouched.
func (uc *ComputeBalanceUseCase) Execute(ctx context.Context, input ComputeBalanceInput) (*ComputeBalanceOutput, error) {
	var out ComputeBalanceOutput

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		engine := ledger.NewEngine(repos, uc.clock, uc.cfg)

		wallet, err := repos.Wallets.FindByID(ctx, input.WalletID)
		if err != nil {
			return err
		}

		asOf := engine.Today()
		if input.AsOf != nil {
			asOf = entity.DateOf(*input.AsOf)
		}
		allowCacheWrite := asOf.Equal(engine.Today())

		balance, err := engine.Balance(ctx, wallet, asOf, allowCacheWrite)
		if err != nil {
			return err
		}

		out = ComputeBalanceOutput{
			WalletID: wallet.ID,
			AsOf:     asOf,
			Balance:  balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}
