package transaction

import (
	"context"
	"fmt"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// ListTransactionsInput represents the input for transaction listing.
type ListTransactionsInput struct {
	Filter adapter.TransactionFilter
}

// ListTransactionsOutput represents the output of transaction listing.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
}

// ListTransactionsUseCase handles filtered transaction listing.
type ListTransactionsUseCase struct {
	uow adapter.UnitOfWork
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(uow adapter.UnitOfWork) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		uow: uow,
	}
}

// Execute lists transactions matching the filter, newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	transactions, err := uc.uow.Repos().Transactions.FindByFilter(ctx, input.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListTransactionsOutput{Transactions: transactions}, nil
}
