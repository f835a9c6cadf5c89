package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/application/ledger"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
)

// ResolveCalibrationInput represents the input for calibration resolution:
// the forgotten real transaction that explains (part of) a calibration
// adjustment. The real transaction is always created in the calibration's
// wallet; any wallet in the nested input is ignored.
type ResolveCalibrationInput struct {
	CalibrationID uuid.UUID
	Transaction   CreateTransactionInput
}

// ResolveCalibrationOutput represents the output of calibration resolution.
type ResolveCalibrationOutput struct {
	Transaction *entity.Transaction
	Calibration *entity.Transaction
}

// ResolveCalibrationUseCase replaces part of a synthetic calibration with the
// real transaction the user later remembered.
type ResolveCalibrationUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
	cfg   ledger.Config
}

// NewResolveCalibrationUseCase creates a new ResolveCalibrationUseCase instance.
func NewResolveCalibrationUseCase(uow adapter.UnitOfWork, clock adapter.Clock, cfg ledger.Config) *ResolveCalibrationUseCase {
	return &ResolveCalibrationUseCase{
		uow:   uow,
		clock: clock,
		cfg:   cfg,
	}
}

// Execute creates the real transaction and shrinks the calibration by its
// effect. A same-direction transaction subtracts from the calibration amount;
// an opposite-direction one adds to it. When the remainder reaches zero the
// calibration stays as a zero-amount ignored marker; when it crosses zero the
// calibration flips direction and classification to cover the overshoot. The
// net balance as of today is unchanged, which is the whole point: resolution
// redistributes history without moving the present.
func (uc *ResolveCalibrationUseCase) Execute(ctx context.Context, input ResolveCalibrationInput) (*ResolveCalibrationOutput, error) {
	var out ResolveCalibrationOutput

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		engine := ledger.NewEngine(repos, uc.clock, uc.cfg)

		calibration, err := repos.Transactions.FindByID(ctx, input.CalibrationID)
		if err != nil {
			return err
		}
		if !calibration.IsCalibration {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeNotCalibration,
				"target transaction is not a calibration",
				domainerror.ErrNotCalibration,
			)
		}

		txnInput := input.Transaction
		txnInput.WalletID = calibration.WalletID

		created, err := stageCreate(ctx, repos, engine, txnInput)
		if err != nil {
			return err
		}

		remainder := calibration.Amount
		if created.Direction == calibration.Direction {
			remainder = remainder.Sub(created.Amount)
		} else {
			remainder = remainder.Add(created.Amount)
		}

		switch {
		case remainder.IsZero():
			// Fully explained: keep a zero-amount ignored marker so the
			// calibration's history remains visible.
			calibration.Amount = remainder
			calibration.IsIgnored = true
		case remainder.IsNegative():
			calibration.Amount = remainder.Abs()
			calibration.Direction = calibration.Direction.Opposite()
			calibration.Classification = oppositeCalibrationClass(calibration.Classification)
			calibration.IsIgnored = false
		default:
			calibration.Amount = remainder
		}

		if err := engine.CheckRebuildImpact(ctx, calibration.WalletID, calibration.Date, txnInput.AllowLargeRebuild); err != nil {
			return err
		}

		calibration.UpdatedAt = time.Now().UTC()
		if err := repos.Transactions.Update(ctx, calibration); err != nil {
			return fmt.Errorf("failed to update calibration: %w", err)
		}

		if err := engine.InvalidateFrom(ctx, calibration.WalletID, calibration.Date); err != nil {
			return fmt.Errorf("failed to invalidate snapshots: %w", err)
		}

		out.Transaction = created
		out.Calibration = calibration
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// oppositeCalibrationClass flips the income/expense meaning of a calibration
// whose direction just flipped. Other classifications never appear on
// calibrations.
func oppositeCalibrationClass(c entity.TransactionClassification) entity.TransactionClassification {
	switch c {
	case entity.ClassificationIncome:
		return entity.ClassificationExpense
	case entity.ClassificationExpense:
		return entity.ClassificationIncome
	default:
		return c
	}
}
