package transaction

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

// MergeTransactionsInput represents the input for merging transactions into
// one. The merged transaction carries the given date and description.
type MergeTransactionsInput struct {
	TransactionIDs []uuid.UUID
	Date           time.Time
	Description    string
	CategoryID     *uuid.UUID
	SubcategoryID  *uuid.UUID

	AllowLargeRebuild bool
}

// MergeTransactionsOutput represents the output of a merge.
type MergeTransactionsOutput struct {
	Transaction *entity.Transaction
}

// MergeTransactionsUseCase collapses two or more transactions of one wallet
// and direction into a single transaction summing their amounts.
type MergeTransactionsUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
	cfg   ledger.Config
}

// NewMergeTransactionsUseCase creates a new MergeTransactionsUseCase instance.
func NewMergeTransactionsUseCase(uow adapter.UnitOfWork, clock adapter.Clock, cfg ledger.Config) *MergeTransactionsUseCase {
	return &MergeTransactionsUseCase{
		uow:   uow,
		clock: clock,
		cfg:   cfg,
	}
}

// Execute merges the given transactions. Only plain expense and income rows
// qualify: calibrations, transfers and settlement-classified transactions are
// refused, so the deleted originals never leave dangling pairs or links. The
// merged transaction keeps the shared classification, or falls back to the
// direction's plain one when the originals mix expense subtypes. The guard
// and the invalidation both run from the earliest date the merge touches.
func (uc *MergeTransactionsUseCase) Execute(ctx context.Context, input MergeTransactionsInput) (*MergeTransactionsOutput, error) {
	ids := uniqueIDs(input.TransactionIDs)
	if len(ids) < 2 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMergeTooFew,
			"select at least two transactions to merge",
			domainerror.ErrMergeTooFew,
		)
	}

	var out MergeTransactionsOutput

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		engine := ledger.NewEngine(repos, uc.clock, uc.cfg)

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

		walletID := transactions[0].WalletID
		direction := transactions[0].Direction
		classification := transactions[0].Classification
		total := decimal.Zero

		for _, t := range transactions {
			if t.WalletID != walletID {
				return domainerror.NewTransactionError(
					domainerror.ErrCodeMergeMixedWallets,
					"all transactions must belong to the same wallet",
					domainerror.ErrMergeMixedWallets,
				)
			}
			if t.Direction != direction {
				return domainerror.NewTransactionError(
					domainerror.ErrCodeMergeMixedDirections,
					"all transactions must have the same direction",
					domainerror.ErrMergeMixedDirections,
				)
			}
			if t.IsCalibration {
				return domainerror.NewTransactionError(
					domainerror.ErrCodeMergeSpecial,
					"calibration adjustments cannot be merged",
					domainerror.ErrMergeSpecialTransaction,
				)
			}
			if t.Classification != entity.ClassificationExpense && t.Classification != entity.ClassificationIncome {
				return domainerror.NewTransactionError(
					domainerror.ErrCodeMergeSpecial,
					fmt.Sprintf("transactions classified %q cannot be merged", t.Classification),
					domainerror.ErrMergeSpecialTransaction,
				)
			}
			if t.Classification != classification {
				classification = plainClassification(direction)
			}
			total = total.Add(t.Amount)
		}

		if input.CategoryID != nil {
			if _, err := repos.Categories.FindByID(ctx, *input.CategoryID); err != nil {
				return domainerror.NewTransactionError(
					domainerror.ErrCodeTxnCategoryNotFound,
					"category not found",
					domainerror.ErrCategoryNotFoundForTransaction,
				)
			}
		}
		if input.SubcategoryID != nil {
			if _, err := repos.Categories.FindSubcategoryByID(ctx, *input.SubcategoryID); err != nil {
				return err
			}
		}

		mergedDate := entity.DateOf(input.Date)
		from := mergedDate
		for _, t := range transactions {
			from = minDate(from, t.Date)
		}

		if err := engine.CheckRebuildImpact(ctx, walletID, from, input.AllowLargeRebuild); err != nil {
			return err
		}

		merged := entity.NewTransaction(
			walletID,
			mergedDate,
			direction,
			total,
			classification,
			input.Description,
		)
		merged.CategoryID = input.CategoryID
		merged.SubcategoryID = input.SubcategoryID

		if err := repos.Transactions.Create(ctx, merged); err != nil {
			return fmt.Errorf("failed to create merged transaction: %w", err)
		}

		for _, t := range transactions {
			if err := repos.Transactions.Delete(ctx, t.ID); err != nil {
				return fmt.Errorf("failed to delete merged-away transaction %s: %w", t.ID, err)
			}
		}

		if err := engine.InvalidateFrom(ctx, walletID, from); err != nil {
			return fmt.Errorf("failed to invalidate snapshots: %w", err)
		}

		out.Transaction = merged
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// plainClassification returns the generic classification for a direction.
func plainClassification(direction entity.TransactionDirection) entity.TransactionClassification {
	if direction == entity.DirectionInflow {
		return entity.ClassificationIncome
	}
	return entity.ClassificationExpense
}
