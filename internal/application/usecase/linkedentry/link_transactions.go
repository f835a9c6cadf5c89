package linkedentry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/application/ledger"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
)

// LinkTransactionsInput represents the input for settling an entry with a
// batch of transactions.
type LinkTransactionsInput struct {
	EntryID        uuid.UUID
	TransactionIDs []uuid.UUID
}

// LinkTransactionsOutput represents the output of a settlement batch.
type LinkTransactionsOutput struct {
	Entry *entity.LinkedEntry
	Links []*entity.LinkedTransaction
}

// LinkTransactionsUseCase settles a linked entry with one or more
// transactions, atomically.
type LinkTransactionsUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
	cfg   ledger.Config
}

// NewLinkTransactionsUseCase creates a new LinkTransactionsUseCase instance.
func NewLinkTransactionsUseCase(uow adapter.UnitOfWork, clock adapter.Clock, cfg ledger.Config) *LinkTransactionsUseCase {
	return &LinkTransactionsUseCase{
		uow:   uow,
		clock: clock,
		cfg:   cfg,
	}
}

// settlerRequirements returns the direction a settling transaction must
// carry, the classification it ends up with, and whether that classification
// change requires snapshot invalidation.
func settlerRequirements(linkType entity.LinkType) (entity.TransactionDirection, entity.TransactionClassification, bool) {
	switch linkType {
	case entity.LinkTypeSplitPayment, entity.LinkTypeLoan:
		// Money coming back to the user.
		return entity.DirectionInflow, entity.ClassificationDebtCollection, false
	case entity.LinkTypeDebt:
		return entity.DirectionOutflow, entity.ClassificationLoanRepayment, true
	default: // installment
		return entity.DirectionOutflow, entity.ClassificationInstallmentCharge, true
	}
}

// Execute links the given transactions to the entry as settlements: each one
// is validated against the entry type, reclassified, joined, and the entry's
// pending amount is reduced by the batch total. The whole batch commits or
// rolls back together.
func (uc *LinkTransactionsUseCase) Execute(ctx context.Context, input LinkTransactionsInput) (*LinkTransactionsOutput, error) {
	if len(input.TransactionIDs) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyTransactionIDs,
			"no transaction IDs given",
			domainerror.ErrEmptyTransactionIDs,
		)
	}

	// A transaction listed twice settles once.
	transactionIDs := dedupeIDs(input.TransactionIDs)

	var out LinkTransactionsOutput

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		engine := ledger.NewEngine(repos, uc.clock, uc.cfg)

		entry, err := repos.LinkedEntries.FindEntryByID(ctx, input.EntryID)
		if err != nil {
			return err
		}
		if entry.Status == entity.LinkStatusSettled {
			return domainerror.NewLinkedEntryError(
				domainerror.ErrCodeEntrySettled,
				"entry is already fully settled",
				domainerror.ErrEntrySettled,
			)
		}

		transactions, err := repos.Transactions.FindByIDs(ctx, transactionIDs)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		if len(transactions) != len(transactionIDs) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"one or more transactions not found",
				domainerror.ErrTransactionNotFound,
			)
		}

		existingLinks, err := repos.LinkedEntries.FindLinksByTransactionIDs(ctx, transactionIDs)
		if err != nil {
			return fmt.Errorf("failed to check existing links: %w", err)
		}
		if len(existingLinks) > 0 {
			return domainerror.NewLinkedEntryError(
				domainerror.ErrCodeTransactionAlreadyLinked,
				"one or more transactions are already linked",
				domainerror.ErrTransactionAlreadyLinked,
			)
		}

		requiredDirection, finalClassification, invalidates := settlerRequirements(entry.LinkType)

		batchTotal := decimal.Zero
		for _, t := range transactions {
			if t.ID == entry.PrimaryTransactionID {
				return domainerror.NewLinkedEntryError(
					domainerror.ErrCodeTransactionAlreadyLinked,
					"an entry cannot be settled by its own primary transaction",
					domainerror.ErrTransactionAlreadyLinked,
				)
			}
			if t.Direction != requiredDirection {
				return domainerror.NewLinkedEntryError(
					domainerror.ErrCodeWrongDirection,
					fmt.Sprintf("%s entries are settled by %s transactions", entry.LinkType, requiredDirection),
					domainerror.ErrWrongDirection,
				)
			}
			if !settlerClassificationOK(t.Classification, finalClassification) {
				return domainerror.NewLinkedEntryError(
					domainerror.ErrCodeWrongClassification,
					fmt.Sprintf("transaction classified %q cannot settle a %s entry", t.Classification, entry.LinkType),
					domainerror.ErrWrongClassification,
				)
			}
			batchTotal = batchTotal.Add(t.Amount)
		}

		if batchTotal.GreaterThan(entry.PendingAmount) {
			return domainerror.NewLinkedEntryError(
				domainerror.ErrCodeAmountExceedsPending,
				fmt.Sprintf("batch settles %s but only %s is pending", batchTotal, entry.PendingAmount),
				domainerror.ErrAmountExceedsPending,
			)
		}

		links := make([]*entity.LinkedTransaction, 0, len(transactions))
		for _, t := range transactions {
			if t.Classification != finalClassification {
				t.Classification = finalClassification
				t.UpdatedAt = time.Now().UTC()
				if err := repos.Transactions.Update(ctx, t); err != nil {
					return fmt.Errorf("failed to reclassify transaction: %w", err)
				}
			}
			if invalidates {
				if err := engine.InvalidateFrom(ctx, t.WalletID, t.Date); err != nil {
					return fmt.Errorf("failed to invalidate snapshots: %w", err)
				}
			}

			link := entity.NewLinkedTransaction(entry.ID, t.ID)
			if err := repos.LinkedEntries.CreateLink(ctx, link); err != nil {
				return fmt.Errorf("failed to create settlement link: %w", err)
			}
			links = append(links, link)
		}

		entry.PendingAmount = entry.PendingAmount.Sub(batchTotal)
		entry.RecomputeStatus()
		entry.UpdatedAt = time.Now().UTC()
		if err := repos.LinkedEntries.UpdateEntry(ctx, entry); err != nil {
			return fmt.Errorf("failed to update entry: %w", err)
		}

		out.Entry = entry
		out.Links = links
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// ExecuteSingle links one transaction; a thin wrapper over the batch path.
func (uc *LinkTransactionsUseCase) ExecuteSingle(ctx context.Context, entryID, transactionID uuid.UUID) (*LinkTransactionsOutput, error) {
	return uc.Execute(ctx, LinkTransactionsInput{
		EntryID:        entryID,
		TransactionIDs: []uuid.UUID{transactionID},
	})
}

// dedupeIDs removes repeated IDs preserving order.
func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
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

// settlerClassificationOK reports whether a settling transaction's current
// classification is acceptable: already the final one, or a generic
// income/expense about to be reclassified.
func settlerClassificationOK(current, final entity.TransactionClassification) bool {
	if current == final {
		return true
	}
	switch final {
	case entity.ClassificationDebtCollection:
		return current == entity.ClassificationIncome
	case entity.ClassificationLoanRepayment, entity.ClassificationInstallmentCharge:
		return current == entity.ClassificationExpense
	}
	return false
}
