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

// UpdateTransactionInput represents the input for transaction update. Nil
// fields are left unchanged.
type UpdateTransactionInput struct {
	TransactionID  uuid.UUID
	WalletID       *uuid.UUID
	Date           *time.Time
	TimeOfDay      *string
	Amount         *decimal.Decimal
	Classification *entity.TransactionClassification
	Description    *string
	CategoryID     *uuid.UUID
	ClearCategory  bool
	SubcategoryID  *uuid.UUID
	IsIgnored      *bool

	AllowLargeRebuild bool
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
	cfg   ledger.Config
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(uow adapter.UnitOfWork, clock adapter.Clock, cfg ledger.Config) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		uow:   uow,
		clock: clock,
		cfg:   cfg,
	}
}

// Execute performs the transaction update. Snapshots are invalidated from the
// earlier of the old and new dates; when the transaction moves between
// wallets both sides are invalidated. Amount, date, classification and
// description changes propagate to the paired half of a transfer.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	var out UpdateTransactionOutput

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		engine := ledger.NewEngine(repos, uc.clock, uc.cfg)

		transaction, err := repos.Transactions.FindByID(ctx, input.TransactionID)
		if err != nil {
			return err
		}

		oldWalletID := transaction.WalletID
		oldDate := transaction.Date

		if input.Amount != nil && !input.Amount.IsPositive() {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidAmount,
				"amount must be positive",
				domainerror.ErrInvalidAmount,
			)
		}
		if input.Classification != nil && !entity.IsValidClassification(*input.Classification) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidClassification,
				fmt.Sprintf("unknown classification %q", *input.Classification),
				domainerror.ErrInvalidClassification,
			)
		}

		if input.WalletID != nil && *input.WalletID != oldWalletID {
			if _, err := repos.Wallets.FindByID(ctx, *input.WalletID); err != nil {
				return err
			}
			transaction.WalletID = *input.WalletID
		}
		if input.Date != nil {
			transaction.Date = entity.DateOf(*input.Date)
		}
		if input.TimeOfDay != nil {
			transaction.TimeOfDay = input.TimeOfDay
		}
		if input.Amount != nil {
			transaction.Amount = *input.Amount
		}
		if input.Classification != nil {
			transaction.Classification = *input.Classification
		}
		if input.Description != nil {
			transaction.Description = *input.Description
		}
		if input.ClearCategory {
			transaction.CategoryID = nil
			transaction.SubcategoryID = nil
		} else {
			if input.CategoryID != nil {
				if _, err := repos.Categories.FindByID(ctx, *input.CategoryID); err != nil {
					return domainerror.NewTransactionError(
						domainerror.ErrCodeTxnCategoryNotFound,
						"category not found",
						domainerror.ErrCategoryNotFoundForTransaction,
					)
				}
				transaction.CategoryID = input.CategoryID
			}
			if input.SubcategoryID != nil {
				if _, err := repos.Categories.FindSubcategoryByID(ctx, *input.SubcategoryID); err != nil {
					return err
				}
				transaction.SubcategoryID = input.SubcategoryID
			}
		}
		if input.IsIgnored != nil {
			transaction.IsIgnored = *input.IsIgnored
		}

		// The guard checks the oldest date the rewrite touches, on every
		// wallet it touches.
		guardDate := minDate(oldDate, transaction.Date)
		if err := engine.CheckRebuildImpact(ctx, oldWalletID, guardDate, input.AllowLargeRebuild); err != nil {
			return err
		}
		if transaction.WalletID != oldWalletID {
			if err := engine.CheckRebuildImpact(ctx, transaction.WalletID, transaction.Date, input.AllowLargeRebuild); err != nil {
				return err
			}
		}

		transaction.UpdatedAt = time.Now().UTC()
		if err := repos.Transactions.Update(ctx, transaction); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}

		if err := uc.propagateToPair(ctx, repos, engine, transaction, input); err != nil {
			return err
		}

		if err := engine.InvalidateFrom(ctx, oldWalletID, guardDate); err != nil {
			return fmt.Errorf("failed to invalidate snapshots: %w", err)
		}
		if transaction.WalletID != oldWalletID {
			if err := engine.InvalidateFrom(ctx, transaction.WalletID, transaction.Date); err != nil {
				return fmt.Errorf("failed to invalidate snapshots: %w", err)
			}
		}

		out.Transaction = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// propagateToPair mirrors amount, date, time, classification and description
// changes onto the other half of a transfer, invalidating that wallet's
// snapshots from the earlier of its old and new dates.
func (uc *UpdateTransactionUseCase) propagateToPair(
	ctx context.Context,
	repos adapter.Repositories,
	engine *ledger.Engine,
	transaction *entity.Transaction,
	input UpdateTransactionInput,
) error {
	if transaction.PairedTransactionID == nil {
		return nil
	}
	if input.Amount == nil && input.Date == nil && input.TimeOfDay == nil &&
		input.Classification == nil && input.Description == nil {
		return nil
	}

	pair, err := repos.Transactions.FindByID(ctx, *transaction.PairedTransactionID)
	if err != nil {
		return fmt.Errorf("failed to load paired transaction: %w", err)
	}

	pairOldDate := pair.Date
	if input.Amount != nil {
		pair.Amount = *input.Amount
	}
	if input.Date != nil {
		pair.Date = entity.DateOf(*input.Date)
	}
	if input.TimeOfDay != nil {
		pair.TimeOfDay = input.TimeOfDay
	}
	if input.Classification != nil {
		pair.Classification = *input.Classification
	}
	if input.Description != nil {
		pair.Description = *input.Description
	}
	pair.UpdatedAt = time.Now().UTC()

	if err := repos.Transactions.Update(ctx, pair); err != nil {
		return fmt.Errorf("failed to update paired transaction: %w", err)
	}

	if err := engine.InvalidateFrom(ctx, pair.WalletID, minDate(pairOldDate, pair.Date)); err != nil {
		return fmt.Errorf("failed to invalidate snapshots: %w", err)
	}

	return nil
}

// minDate returns the earlier of two dates.
func minDate(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}
