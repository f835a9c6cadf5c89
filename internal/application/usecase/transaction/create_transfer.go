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

// CreateTransferInput represents the input for a wallet-to-wallet transfer.
type CreateTransferInput struct {
	FromWalletID      uuid.UUID
	ToWalletID        uuid.UUID
	Date              time.Time
	TimeOfDay         *string
	Amount            decimal.Decimal
	Description       string
	AllowLargeRebuild bool
}

// CreateTransferOutput represents the output of a transfer: the outflow half
// first, the inflow half second.
type CreateTransferOutput struct {
	Outflow *entity.Transaction
	Inflow  *entity.Transaction
}

// CreateTransferUseCase creates the two mutually paired halves of a transfer.
type CreateTransferUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
	cfg   ledger.Config
}

// NewCreateTransferUseCase creates a new CreateTransferUseCase instance.
func NewCreateTransferUseCase(uow adapter.UnitOfWork, clock adapter.Clock, cfg ledger.Config) *CreateTransferUseCase {
	return &CreateTransferUseCase{
		uow:   uow,
		clock: clock,
		cfg:   cfg,
	}
}

// Execute writes an outflow in the source wallet and an inflow in the
// destination wallet, classified as transfers and referencing each other.
// Both wallets pass the safety guard before either half is written, and both
// are invalidated from the transfer date.
func (uc *CreateTransferUseCase) Execute(ctx context.Context, input CreateTransferInput) (*CreateTransferOutput, error) {
	if input.FromWalletID == input.ToWalletID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeSameWalletTransfer,
			"source and destination wallets must differ",
			domainerror.ErrSameWalletTransfer,
		)
	}
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be positive",
			domainerror.ErrInvalidAmount,
		)
	}

	var out CreateTransferOutput

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		engine := ledger.NewEngine(repos, uc.clock, uc.cfg)
		date := entity.DateOf(input.Date)

		if _, err := repos.Wallets.FindByID(ctx, input.FromWalletID); err != nil {
			return err
		}
		if _, err := repos.Wallets.FindByID(ctx, input.ToWalletID); err != nil {
			return err
		}

		if err := engine.CheckRebuildImpact(ctx, input.FromWalletID, date, input.AllowLargeRebuild); err != nil {
			return err
		}
		if err := engine.CheckRebuildImpact(ctx, input.ToWalletID, date, input.AllowLargeRebuild); err != nil {
			return err
		}

		outflow := entity.NewTransaction(
			input.FromWalletID,
			date,
			entity.DirectionOutflow,
			input.Amount,
			entity.ClassificationTransfer,
			input.Description,
		)
		outflow.TimeOfDay = input.TimeOfDay

		inflow := entity.NewTransaction(
			input.ToWalletID,
			date,
			entity.DirectionInflow,
			input.Amount,
			entity.ClassificationTransfer,
			input.Description,
		)
		inflow.TimeOfDay = input.TimeOfDay
		inflow.PairedTransactionID = &outflow.ID

		if err := repos.Transactions.Create(ctx, outflow); err != nil {
			return fmt.Errorf("failed to create outflow half: %w", err)
		}
		if err := repos.Transactions.Create(ctx, inflow); err != nil {
			return fmt.Errorf("failed to create inflow half: %w", err)
		}

		outflow.PairedTransactionID = &inflow.ID
		outflow.UpdatedAt = time.Now().UTC()
		if err := repos.Transactions.Update(ctx, outflow); err != nil {
			return fmt.Errorf("failed to pair transfer halves: %w", err)
		}

		if err := engine.InvalidateFrom(ctx, input.FromWalletID, date); err != nil {
			return fmt.Errorf("failed to invalidate snapshots: %w", err)
		}
		if err := engine.InvalidateFrom(ctx, input.ToWalletID, date); err != nil {
			return fmt.Errorf("failed to invalidate snapshots: %w", err)
		}

		out.Outflow = outflow
		out.Inflow = inflow
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}
