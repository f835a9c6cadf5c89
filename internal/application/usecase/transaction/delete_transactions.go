package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/application/ledger"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
)

// DeleteTransactionsInput represents the input for batch transaction deletion.
type DeleteTransactionsInput struct {
	TransactionIDs    []uuid.UUID
	AllowLargeRebuild bool
}

// DeleteTransactionsOutput represents the output of batch deletion.
type DeleteTransactionsOutput struct {
	DeletedCount int
}

// DeleteTransactionsUseCase handles atomic batch deletion of transactions,
// unwinding transfer pairs and settlement bookkeeping along the way.
type DeleteTransactionsUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
	cfg   ledger.Config
}

// NewDeleteTransactionsUseCase creates a new DeleteTransactionsUseCase instance.
func NewDeleteTransactionsUseCase(uow adapter.UnitOfWork, clock adapter.Clock, cfg ledger.Config) *DeleteTransactionsUseCase {
	return &DeleteTransactionsUseCase{
		uow:   uow,
		clock: clock,
		cfg:   cfg,
	}
}

// Execute deletes the given transactions in one unit of work. For each one:
// the other half of a transfer is deleted with it, a settlement entry it
// originated is deleted with its links, and a settlement link it carries is
// unwound by restoring the entry's pending amount. Every touched wallet is
// guarded and invalidated from the earliest deleted date. Any missing ID
// fails the whole batch.
func (uc *DeleteTransactionsUseCase) Execute(ctx context.Context, input DeleteTransactionsInput) (*DeleteTransactionsOutput, error) {
	if len(input.TransactionIDs) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyTransactionIDs,
			"no transaction IDs given",
			domainerror.ErrEmptyTransactionIDs,
		)
	}

	var out DeleteTransactionsOutput

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		engine := ledger.NewEngine(repos, uc.clock, uc.cfg)

		transactions, err := repos.Transactions.FindByIDs(ctx, input.TransactionIDs)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		if len(transactions) != len(uniqueIDs(input.TransactionIDs)) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"one or more transactions not found",
				domainerror.ErrTransactionNotFound,
			)
		}

		// Resolve transfer pairs up front so the guard sees every wallet
		// the batch will touch before anything is mutated.
		victims := make([]*entity.Transaction, 0, len(transactions))
		seen := make(map[uuid.UUID]bool, len(transactions))
		for _, t := range transactions {
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			victims = append(victims, t)

			if t.PairedTransactionID != nil && !seen[*t.PairedTransactionID] {
				pair, err := repos.Transactions.FindByID(ctx, *t.PairedTransactionID)
				if err != nil {
					if errors.Is(err, domainerror.ErrTransactionNotFound) {
						continue // dangling reference, nothing to unwind
					}
					return fmt.Errorf("failed to load paired transaction: %w", err)
				}
				seen[pair.ID] = true
				victims = append(victims, pair)
			}
		}

		affected := make(map[uuid.UUID]time.Time)
		for _, t := range victims {
			if from, ok := affected[t.WalletID]; !ok || t.Date.Before(from) {
				affected[t.WalletID] = t.Date
			}
		}

		for walletID, from := range affected {
			if err := engine.CheckRebuildImpact(ctx, walletID, from, input.AllowLargeRebuild); err != nil {
				return err
			}
		}

		for _, t := range victims {
			if err := uc.unwindSettlement(ctx, repos, t); err != nil {
				return err
			}
			if err := repos.Transactions.Delete(ctx, t.ID); err != nil {
				return fmt.Errorf("failed to delete transaction %s: %w", t.ID, err)
			}
		}

		for walletID, from := range affected {
			if err := engine.InvalidateFrom(ctx, walletID, from); err != nil {
				return fmt.Errorf("failed to invalidate snapshots: %w", err)
			}
		}

		slog.Info("Deleted transactions",
			"count", len(victims),
			"wallets", len(affected),
		)

		out.DeletedCount = len(victims)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// unwindSettlement removes the settlement state attached to a transaction
// about to be deleted: an entry it originated dies with its links, and a link
// it carries returns its amount to the entry's pending bucket.
func (uc *DeleteTransactionsUseCase) unwindSettlement(ctx context.Context, repos adapter.Repositories, t *entity.Transaction) error {
	entry, err := repos.LinkedEntries.FindEntryByPrimaryTransaction(ctx, t.ID)
	if err != nil && !errors.Is(err, domainerror.ErrLinkedEntryNotFound) {
		return fmt.Errorf("failed to look up linked entry: %w", err)
	}
	if entry != nil {
		if err := repos.LinkedEntries.DeleteEntry(ctx, entry.ID); err != nil {
			return fmt.Errorf("failed to delete linked entry: %w", err)
		}
	}

	link, err := repos.LinkedEntries.FindLinkByTransaction(ctx, t.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrLinkNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up settlement link: %w", err)
	}

	linkedEntry, err := repos.LinkedEntries.FindEntryByID(ctx, link.LinkedEntryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrLinkedEntryNotFound) {
			// Entry already deleted in this batch; the link went with it.
			return nil
		}
		return fmt.Errorf("failed to load linked entry: %w", err)
	}

	linkedEntry.PendingAmount = linkedEntry.PendingAmount.Add(t.Amount)
	linkedEntry.RecomputeStatus()
	linkedEntry.UpdatedAt = time.Now().UTC()

	if err := repos.LinkedEntries.UpdateEntry(ctx, linkedEntry); err != nil {
		return fmt.Errorf("failed to restore pending amount: %w", err)
	}
	if err := repos.LinkedEntries.DeleteLink(ctx, link.ID); err != nil {
		return fmt.Errorf("failed to delete settlement link: %w", err)
	}

	return nil
}

// uniqueIDs deduplicates an ID list preserving order.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}
