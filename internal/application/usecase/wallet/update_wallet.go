package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// UpdateWalletInput represents the input for wallet update. Nil fields are
// left unchanged. The wallet type is immutable after creation.
type UpdateWalletInput struct {
	WalletID    uuid.UUID
	Name        *string
	CreditLimit *decimal.Decimal
	Emoji       *string
}

// UpdateWalletOutput represents the output of wallet update.
type UpdateWalletOutput struct {
	Wallet *entity.Wallet
}

// UpdateWalletUseCase handles wallet update logic.
type UpdateWalletUseCase struct {
	uow adapter.UnitOfWork
}

// NewUpdateWalletUseCase creates a new UpdateWalletUseCase instance.
func NewUpdateWalletUseCase(uow adapter.UnitOfWork) *UpdateWalletUseCase {
	return &UpdateWalletUseCase{
		uow: uow,
	}
}

// Execute performs the wallet update.
func (uc *UpdateWalletUseCase) Execute(ctx context.Context, input UpdateWalletInput) (*UpdateWalletOutput, error) {
	var out UpdateWalletOutput

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		wallet, err := repos.Wallets.FindByID(ctx, input.WalletID)
		if err != nil {
			return err
		}

		if input.Name != nil && *input.Name != wallet.Name {
			existing, err := repos.Wallets.FindByName(ctx, *input.Name)
			if err != nil && !errors.Is(err, domainerror.ErrWalletNotFound) {
				return fmt.Errorf("failed to check wallet name: %w", err)
			}
			if existing != nil {
				return domainerror.NewWalletError(
					domainerror.ErrCodeWalletNameTaken,
					fmt.Sprintf("wallet named %q already exists", *input.Name),
					domainerror.ErrWalletNameTaken,
				)
			}
			wallet.Name = *input.Name
		}

		if input.CreditLimit != nil {
			wallet.CreditLimit = *input.CreditLimit
		}
		if input.Emoji != nil {
			wallet.Emoji = *input.Emoji
		}

		wallet.UpdatedAt = time.Now().UTC()

		if err := repos.Wallets.Update(ctx, wallet); err != nil {
			return fmt.Errorf("failed to update wallet: %w", err)
		}

		out.Wallet = wallet
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}
