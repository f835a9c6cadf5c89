package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
)

// SetIgnoredInput represents the input for bulk ignore/unignore.
type SetIgnoredInput struct {
	TransactionIDs []uuid.UUID
	Ignored        bool
}

// SetIgnoredOutput represents the output of bulk ignore/unignore.
type SetIgnoredOutput struct {
	UpdatedCount int
}

// SetIgnoredUseCase flips the reporting-ignore flag on a batch of
// transactions. The flag affects expense/income reports only; balance never
// changes, so no snapshot invalidation is needed.
type SetIgnoredUseCase struct {
	uow adapter.UnitOfWork
}

// NewSetIgnoredUseCase creates a new SetIgnoredUseCase instance.
func NewSetIgnoredUseCase(uow adapter.UnitOfWork) *SetIgnoredUseCase {
	return &SetIgnoredUseCase{
		uow: uow,
	}
}

// Execute performs the bulk flag update. All IDs must exist.
func (uc *SetIgnoredUseCase) Execute(ctx context.Context, input SetIgnoredInput) (*SetIgnoredOutput, error) {
	if len(input.TransactionIDs) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyTransactionIDs,
			"no transaction IDs given",
			domainerror.ErrEmptyTransactionIDs,
		)
	}

	ids := uniqueIDs(input.TransactionIDs)
	var out SetIgnoredOutput

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		transactions, err := repos.Transactions.FindByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		if len(transactions) != len(ids) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"one or more transactions not found",
				domainerror.ErrTransactionNotFound,
			)
		}

		if err := repos.Transactions.SetIgnored(ctx, ids, input.Ignored); err != nil {
			return fmt.Errorf("failed to update ignore flag: %w", err)
		}

		out.UpdatedCount = len(ids)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}
