package wallet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/application/ledger"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
)

// CalibrateWalletInput represents the input for balance calibration.
// ActualBalance is the real-world balance the user observed.
type CalibrateWalletInput struct {
	WalletID      uuid.UUID
	ActualBalance decimal.Decimal
	CategoryID    *uuid.UUID
}

// CalibrateWalletOutput represents the output of balance calibration.
type CalibrateWalletOutput struct {
	Transaction *entity.Transaction
}

// CalibrateWalletUseCase reconciles a wallet's computed balance with reality
// by inserting a synthetic adjustment transaction.
type CalibrateWalletUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
	cfg   ledger.Config
}

// NewCalibrateWalletUseCase creates a new CalibrateWalletUseCase instance.
func NewCalibrateWalletUseCase(uow adapter.UnitOfWork, clock adapter.Clock, cfg ledger.Config) *CalibrateWalletUseCase {
	return &CalibrateWalletUseCase{
		uow:   uow,
		clock: clock,
		cfg:   cfg,
	}
}

// Execute compares the computed balance against the asserted one and writes a
// calibration transaction covering the difference, dated today. For normal
// wallets a shortfall becomes an inflow; for credit wallets the directions
// flip because outflows grow the debt. Snapshots from today onward are
// invalidated in the same unit of work.
func (uc *CalibrateWalletUseCase) Execute(ctx context.Context, input CalibrateWalletInput) (*CalibrateWalletOutput, error) {
	var out CalibrateWalletOutput

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		engine := ledger.NewEngine(repos, uc.clock, uc.cfg)
		today := engine.Today()

		wallet, err := repos.Wallets.FindByID(ctx, input.WalletID)
		if err != nil {
			return err
		}

		current, err := engine.Balance(ctx, wallet, today, false)
		if err != nil {
			return fmt.Errorf("failed to compute balance: %w", err)
		}

		diff := input.ActualBalance.Sub(current)
		if diff.IsZero() {
			return domainerror.NewWalletError(
				domainerror.ErrCodeBalanceAlreadyCorrect,
				"computed balance already matches",
				domainerror.ErrBalanceAlreadyCorrect,
			)
		}

		direction := entity.DirectionInflow
		if diff.IsNegative() {
			direction = entity.DirectionOutflow
		}
		if wallet.Type == entity.WalletTypeCredit {
			direction = direction.Opposite()
		}
		classification := entity.ClassificationIncome
		if direction == entity.DirectionOutflow {
			classification = entity.ClassificationExpense
		}

		calibration := entity.NewTransaction(
			wallet.ID,
			today,
			direction,
			diff.Abs(),
			classification,
			entity.CalibrationDescription,
		)
		calibration.IsCalibration = true
		calibration.CategoryID = input.CategoryID

		if input.CategoryID != nil {
			if _, err := repos.Categories.FindByID(ctx, *input.CategoryID); err != nil {
				return domainerror.NewTransactionError(
					domainerror.ErrCodeTxnCategoryNotFound,
					"category not found",
					domainerror.ErrCategoryNotFoundForTransaction,
				)
			}
		}

		if err := repos.Transactions.Create(ctx, calibration); err != nil {
			return fmt.Errorf("failed to create calibration: %w", err)
		}

		if err := engine.InvalidateFrom(ctx, wallet.ID, today); err != nil {
			return fmt.Errorf("failed to invalidate snapshots: %w", err)
		}

		slog.Info("Wallet calibrated",
			"walletID", wallet.ID,
			"diff", diff,
		)

		out.Transaction = calibration
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}
