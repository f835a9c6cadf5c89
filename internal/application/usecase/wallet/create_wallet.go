// Package wallet contains wallet-related use cases: CRUD, balance
// computation, balance history and calibration.
package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
)

// CreateWalletInput represents the input for wallet creation.
type CreateWalletInput struct {
	Name           string
	Type           entity.WalletType
	CreditLimit    decimal.Decimal
	Emoji          string
	InitialBalance decimal.Decimal
}

// CreateWalletOutput represents the output of wallet creation.
type CreateWalletOutput struct {
	Wallet *entity.Wallet
}

// CreateWalletUseCase handles wallet creation logic.
type CreateWalletUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
}

// NewCreateWalletUseCase creates a new CreateWalletUseCase instance.
func NewCreateWalletUseCase(uow adapter.UnitOfWork, clock adapter.Clock) *CreateWalletUseCase {
	return &CreateWalletUseCase{
		uow:   uow,
		clock: clock,
	}
}

// Execute performs the wallet creation. A positive initial balance is seeded
// as an ignored inflow transaction dated today, so it counts toward balance
// but never toward income reports.
func (uc *CreateWalletUseCase) Execute(ctx context.Context, input CreateWalletInput) (*CreateWalletOutput, error) {
	if !entity.IsValidWalletType(input.Type) {
		return nil, domainerror.NewWalletError(
			domainerror.ErrCodeInvalidWalletType,
			"wallet type must be 'normal' or 'credit'",
			domainerror.ErrInvalidWalletType,
		)
	}

	wallet := entity.NewWallet(input.Name, input.Type, input.CreditLimit, input.Emoji)

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		existing, err := repos.Wallets.FindByName(ctx, input.Name)
		if err != nil && !errors.Is(err, domainerror.ErrWalletNotFound) {
			return fmt.Errorf("failed to check wallet name: %w", err)
		}
		if existing != nil {
			return domainerror.NewWalletError(
				domainerror.ErrCodeWalletNameTaken,
				fmt.Sprintf("wallet named %q already exists", input.Name),
				domainerror.ErrWalletNameTaken,
			)
		}

		if err := repos.Wallets.Create(ctx, wallet); err != nil {
			return fmt.Errorf("failed to create wallet: %w", err)
		}

		if input.InitialBalance.IsPositive() {
			seed := entity.NewTransaction(
				wallet.ID,
				entity.DateOf(uc.clock.Now()),
				entity.DirectionInflow,
				input.InitialBalance,
				entity.ClassificationIncome,
				entity.InitialBalanceDescription,
			)
			seed.IsIgnored = true
			if err := repos.Transactions.Create(ctx, seed); err != nil {
				return fmt.Errorf("failed to seed initial balance: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateWalletOutput{Wallet: wallet}, nil
}
