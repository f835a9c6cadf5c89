// Package transaction contains transaction-related use cases: creation,
// update, batch deletion, transfers, ignore flags and calibration resolution.
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

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	WalletID       uuid.UUID
	Date           time.Time
	TimeOfDay      *string
	Direction      entity.TransactionDirection
	Amount         decimal.Decimal
	Classification entity.TransactionClassification
	Description    string
	CategoryID     *uuid.UUID
	SubcategoryID  *uuid.UUID
	IsIgnored      bool

	// AllowLargeRebuild confirms a write whose snapshot invalidation the
	// safety guard would otherwise reject as too expensive.
	AllowLargeRebuild bool
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
	cfg   ledger.Config
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(uow adapter.UnitOfWork, clock adapter.Clock, cfg ledger.Config) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		uow:   uow,
		clock: clock,
		cfg:   cfg,
	}
}

// Execute performs the transaction creation. The safety guard runs before the
// write, and snapshots from the transaction date onward are invalidated in
// the same unit of work, so the balance cache can never outlive the data it
// summarizes.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	var out CreateTransactionOutput

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		engine := ledger.NewEngine(repos, uc.clock, uc.cfg)

		created, err := stageCreate(ctx, repos, engine, input)
		if err != nil {
			return err
		}

		out.Transaction = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// stageCreate validates and writes one transaction inside an already open
// unit of work, running the safety guard and invalidating stale snapshots.
// Shared with calibration resolution, which creates the real transaction
// through the same path.
func stageCreate(ctx context.Context, repos adapter.Repositories, engine *ledger.Engine, input CreateTransactionInput) (*entity.Transaction, error) {
	if !entity.IsValidDirection(input.Direction) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDirection,
			"direction must be 'inflow', 'outflow' or 'reserved'",
			domainerror.ErrInvalidDirection,
		)
	}
	if !entity.IsValidClassification(input.Classification) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidClassification,
			fmt.Sprintf("unknown classification %q", input.Classification),
			domainerror.ErrInvalidClassification,
		)
	}
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be positive",
			domainerror.ErrInvalidAmount,
		)
	}

	if _, err := repos.Wallets.FindByID(ctx, input.WalletID); err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if _, err := repos.Categories.FindByID(ctx, *input.CategoryID); err != nil {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
	}
	if input.SubcategoryID != nil {
		if _, err := repos.Categories.FindSubcategoryByID(ctx, *input.SubcategoryID); err != nil {
			return nil, err
		}
	}

	date := entity.DateOf(input.Date)

	if err := engine.CheckRebuildImpact(ctx, input.WalletID, date, input.AllowLargeRebuild); err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		input.WalletID,
		date,
		input.Direction,
		input.Amount,
		input.Classification,
		input.Description,
	)
	transaction.TimeOfDay = input.TimeOfDay
	transaction.CategoryID = input.CategoryID
	transaction.SubcategoryID = input.SubcategoryID
	transaction.IsIgnored = input.IsIgnored

	if err := repos.Transactions.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := engine.InvalidateFrom(ctx, input.WalletID, date); err != nil {
		return nil, fmt.Errorf("failed to invalidate snapshots: %w", err)
	}

	return transaction, nil
}
