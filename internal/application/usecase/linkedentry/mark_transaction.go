package linkedentry

import (
	"context"

	"github.com/google/uuid"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// MarkTransactionInput represents the input for marking an existing
// transaction as a loan or debt after the fact.
type MarkTransactionInput struct {
	TransactionID    uuid.UUID
	CounterpartyName string
	Notes            string
}

// MarkTransactionOutput represents the output of marking.
type MarkTransactionOutput struct {
	Entry *entity.LinkedEntry
}

// MarkAsLoanUseCase reclassifies an outflow as money lent and opens the loan
// entry tracking its repayment.
type MarkAsLoanUseCase struct {
	uow adapter.UnitOfWork
}

// NewMarkAsLoanUseCase creates a new MarkAsLoanUseCase instance.
func NewMarkAsLoanUseCase(uow adapter.UnitOfWork) *MarkAsLoanUseCase {
	return &MarkAsLoanUseCase{
		uow: uow,
	}
}

// Execute marks the transaction as a loan. Reclassification and entry
// creation happen in one unit of work.
func (uc *MarkAsLoanUseCase) Execute(ctx context.Context, input MarkTransactionInput) (*MarkTransactionOutput, error) {
	return markTransaction(ctx, uc.uow, entity.LinkTypeLoan, input)
}

// MarkAsDebtUseCase reclassifies an inflow as money borrowed and opens the
// debt entry tracking its repayment.
type MarkAsDebtUseCase struct {
	uow adapter.UnitOfWork
}

// NewMarkAsDebtUseCase creates a new MarkAsDebtUseCase instance.
func NewMarkAsDebtUseCase(uow adapter.UnitOfWork) *MarkAsDebtUseCase {
	return &MarkAsDebtUseCase{
		uow: uow,
	}
}

// Execute marks the transaction as a debt.
func (uc *MarkAsDebtUseCase) Execute(ctx context.Context, input MarkTransactionInput) (*MarkTransactionOutput, error) {
	return markTransaction(ctx, uc.uow, entity.LinkTypeDebt, input)
}

func markTransaction(ctx context.Context, uow adapter.UnitOfWork, linkType entity.LinkType, input MarkTransactionInput) (*MarkTransactionOutput, error) {
	var out MarkTransactionOutput

	err := uow.Execute(ctx, func(repos adapter.Repositories) error {
		entry, err := stageCreateEntry(ctx, repos, CreateEntryInput{
			LinkType:             linkType,
			PrimaryTransactionID: input.TransactionID,
			CounterpartyName:     input.CounterpartyName,
			Notes:                input.Notes,
		}, true)
		if err != nil {
			return err
		}
		out.Entry = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}
