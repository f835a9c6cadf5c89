package wallet

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
)

// DeleteWalletInput represents the input for wallet deletion.
type DeleteWalletInput struct {
	WalletID uuid.UUID
}

// DeleteWalletUseCase handles wallet deletion logic.
type DeleteWalletUseCase struct {
	uow adapter.UnitOfWork
}

// NewDeleteWalletUseCase creates a new DeleteWalletUseCase instance.
func NewDeleteWalletUseCase(uow adapter.UnitOfWork) *DeleteWalletUseCase {
	return &DeleteWalletUseCase{
		uow: uow,
	}
}

// Execute deletes an empty wallet. A wallet that still owns transactions is
// refused: transactions must be deleted or moved first so settlement links
// and transfer pairs are unwound through their own operations.
func (uc *DeleteWalletUseCase) Execute(ctx context.Context, input DeleteWalletInput) error {
	return uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		if _, err := repos.Wallets.FindByID(ctx, input.WalletID); err != nil {
			return err
		}

		hasTransactions, err := repos.Transactions.ExistsForWallet(ctx, input.WalletID)
		if err != nil {
			return fmt.Errorf("failed to check wallet transactions: %w", err)
		}
		if hasTransactions {
			return domainerror.NewWalletError(
				domainerror.ErrCodeWalletHasTransactions,
				"wallet still owns transactions",
				domainerror.ErrWalletHasTransactions,
			)
		}

		return repos.Wallets.Delete(ctx, input.WalletID)
	})
}
