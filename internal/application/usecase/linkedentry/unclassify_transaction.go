package linkedentry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/application/ledger"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
)

// UnclassifyTransactionInput represents the input for unclassification.
type UnclassifyTransactionInput struct {
	TransactionID uuid.UUID
}

// UnclassifyTransactionOutput represents the output of unclassification.
type UnclassifyTransactionOutput struct {
	Transaction *entity.Transaction
}

// UnclassifyTransactionUseCase reverts a primary transaction to a plain
// expense or income, dissolving the settlement entry it originated.
type UnclassifyTransactionUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
	cfg   ledger.Config
}

// NewUnclassifyTransactionUseCase creates a new UnclassifyTransactionUseCase instance.
func NewUnclassifyTransactionUseCase(uow adapter.UnitOfWork, clock adapter.Clock, cfg ledger.Config) *UnclassifyTransactionUseCase {
	return &UnclassifyTransactionUseCase{
		uow:   uow,
		clock: clock,
		cfg:   cfg,
	}
}

// Execute dissolves the transaction's settlement entry: every settler is
// reverted to its generic classification (debt collections back to income,
// loan repayments back to expenses), the entry and its links are deleted,
// and the primary itself is reverted. An installment primary also regains
// the outflow direction its reserved placeholder suppressed, which changes
// balance and therefore invalidates snapshots from its date.
func (uc *UnclassifyTransactionUseCase) Execute(ctx context.Context, input UnclassifyTransactionInput) (*UnclassifyTransactionOutput, error) {
	var out UnclassifyTransactionOutput

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		engine := ledger.NewEngine(repos, uc.clock, uc.cfg)

		transaction, err := repos.Transactions.FindByID(ctx, input.TransactionID)
		if err != nil {
			return err
		}

		entry, err := repos.LinkedEntries.FindEntryByPrimaryTransaction(ctx, transaction.ID)
		if err != nil && !errors.Is(err, domainerror.ErrLinkedEntryNotFound) {
			return fmt.Errorf("failed to look up linked entry: %w", err)
		}

		if entry != nil {
			if err := uc.revertSettlers(ctx, repos, engine, entry.ID); err != nil {
				return err
			}
			if err := repos.LinkedEntries.DeleteEntry(ctx, entry.ID); err != nil {
				return fmt.Errorf("failed to delete linked entry: %w", err)
			}
		}

		if err := uc.revertPrimary(ctx, repos, engine, transaction); err != nil {
			return err
		}

		out.Transaction = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// revertSettlers walks the entry's links and restores each settling
// transaction's generic classification.
func (uc *UnclassifyTransactionUseCase) revertSettlers(ctx context.Context, repos adapter.Repositories, engine *ledger.Engine, entryID uuid.UUID) error {
	links, err := repos.LinkedEntries.FindLinksByEntry(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to load settlement links: %w", err)
	}

	for _, link := range links {
		settler, err := repos.Transactions.FindByID(ctx, link.TransactionID)
		if err != nil {
			return fmt.Errorf("failed to load settling transaction: %w", err)
		}

		var reverted entity.TransactionClassification
		invalidate := false
		switch settler.Classification {
		case entity.ClassificationDebtCollection:
			reverted = entity.ClassificationIncome
		case entity.ClassificationLoanRepayment:
			reverted = entity.ClassificationExpense
			invalidate = true
		default:
			continue // installment charges keep their classification
		}

		settler.Classification = reverted
		settler.UpdatedAt = time.Now().UTC()
		if err := repos.Transactions.Update(ctx, settler); err != nil {
			return fmt.Errorf("failed to revert settling transaction: %w", err)
		}
		if invalidate {
			if err := engine.InvalidateFrom(ctx, settler.WalletID, settler.Date); err != nil {
				return fmt.Errorf("failed to invalidate snapshots: %w", err)
			}
		}
	}

	return nil
}

// revertPrimary restores the primary transaction's generic classification
// and, for installments, its outflow direction.
func (uc *UnclassifyTransactionUseCase) revertPrimary(ctx context.Context, repos adapter.Repositories, engine *ledger.Engine, transaction *entity.Transaction) error {
	invalidate := false

	switch transaction.Classification {
	case entity.ClassificationSplitPayment, entity.ClassificationLend:
		transaction.Classification = entity.ClassificationExpense
	case entity.ClassificationBorrow:
		transaction.Classification = entity.ClassificationIncome
	case entity.ClassificationInstallment:
		transaction.Classification = entity.ClassificationExpense
		transaction.Direction = entity.DirectionOutflow
		invalidate = true
	default:
		return nil // nothing to revert
	}

	transaction.UpdatedAt = time.Now().UTC()
	if err := repos.Transactions.Update(ctx, transaction); err != nil {
		return fmt.Errorf("failed to revert transaction: %w", err)
	}
	if invalidate {
		if err := engine.InvalidateFrom(ctx, transaction.WalletID, transaction.Date); err != nil {
			return fmt.Errorf("failed to invalidate snapshots: %w", err)
		}
	}

	return nil
}
