package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/application/ledger"
	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// BalanceHistoryInput represents the input for a rolling balance history.
// StepDays defaults to 1 when zero.
type BalanceHistoryInput struct {
	WalletID uuid.UUID
	Start    time.Time
	End      time.Time
	StepDays int
}

// BalancePoint is one dated point of a balance history series.
type BalancePoint struct {
	Date    time.Time
	Balance decimal.Decimal
}

// BalanceHistoryOutput represents the output of a balance history query.
type BalanceHistoryOutput struct {
	WalletID uuid.UUID
	Points   []BalancePoint
}

// BalanceHistoryUseCase computes a wallet's balance at fixed day intervals
// over a date range, for charting.
type BalanceHistoryUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
	cfg   ledger.Config
}

// NewBalanceHistoryUseCase creates a new BalanceHistoryUseCase instance.
func NewBalanceHistoryUseCase(uow adapter.UnitOfWork, clock adapter.Clock, cfg ledger.Config) *BalanceHistoryUseCase {
	return &BalanceHistoryUseCase{
		uow:   uow,
		clock: clock,
		cfg:   cfg,
	}
}

// Execute walks the range start..end in StepDays increments, computing each
// point independently. History probes never write to the snapshot cache, so
// charting the past cannot plant misleading checkpoints.
func (uc *BalanceHistoryUseCase) Execute(ctx context.Context, input BalanceHistoryInput) (*BalanceHistoryOutput, error) {
	start := entity.DateOf(input.Start)
	end := entity.DateOf(input.End)
	if end.Before(start) {
		return nil, errors.New("history end date precedes start date")
	}

	step := input.StepDays
	if step <= 0 {
		step = 1
	}

	out := BalanceHistoryOutput{WalletID: input.WalletID}

	repos := uc.uow.Repos()
	engine := ledger.NewEngine(repos, uc.clock, uc.cfg)

	wallet, err := repos.Wallets.FindByID(ctx, input.WalletID)
	if err != nil {
		return nil, err
	}

	for date := start; !date.After(end); date = date.AddDate(0, 0, step) {
		balance, err := engine.Balance(ctx, wallet, date, false)
		if err != nil {
			return nil, err
		}
		out.Points = append(out.Points, BalancePoint{Date: date, Balance: balance})
	}

	return &out, nil
}
