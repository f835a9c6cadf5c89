package linkedentry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// UnlinkTransactionInput represents the input for removing one settlement link.
type UnlinkTransactionInput struct {
	LinkID uuid.UUID
}

// UnlinkTransactionOutput represents the output of unlinking.
type UnlinkTransactionOutput struct {
	Entry *entity.LinkedEntry
}

// UnlinkTransactionUseCase detaches a settling transaction from its entry,
// returning the settled amount to the pending bucket.
type UnlinkTransactionUseCase struct {
	uow adapter.UnitOfWork
}

// NewUnlinkTransactionUseCase creates a new UnlinkTransactionUseCase instance.
func NewUnlinkTransactionUseCase(uow adapter.UnitOfWork) *UnlinkTransactionUseCase {
	return &UnlinkTransactionUseCase{
		uow: uow,
	}
}

// Execute removes the link and restores the entry's pending amount by the
// settling transaction's amount. The transaction keeps its settlement
// classification; only its bookkeeping role is undone.
func (uc *UnlinkTransactionUseCase) Execute(ctx context.Context, input UnlinkTransactionInput) (*UnlinkTransactionOutput, error) {
	var out UnlinkTransactionOutput

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		link, err := repos.LinkedEntries.FindLinkByID(ctx, input.LinkID)
		if err != nil {
			return err
		}

		entry, err := repos.LinkedEntries.FindEntryByID(ctx, link.LinkedEntryID)
		if err != nil {
			return err
		}

		transaction, err := repos.Transactions.FindByID(ctx, link.TransactionID)
		if err != nil {
			return err
		}

		entry.PendingAmount = entry.PendingAmount.Add(transaction.Amount)
		entry.RecomputeStatus()
		entry.UpdatedAt = time.Now().UTC()

		if err := repos.LinkedEntries.UpdateEntry(ctx, entry); err != nil {
			return fmt.Errorf("failed to restore pending amount: %w", err)
		}
		if err := repos.LinkedEntries.DeleteLink(ctx, link.ID); err != nil {
			return fmt.Errorf("failed to delete link: %w", err)
		}

		out.Entry = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}
