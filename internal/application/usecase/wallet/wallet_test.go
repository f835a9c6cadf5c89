package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
)

func TestCreateWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a wallet", func(t *testing.T) {
		uow, clock, _ := testDeps(t)
		uc := NewCreateWalletUseCase(uow, clock)

		out, err := uc.Execute(ctx, CreateWalletInput{
			Name: "Cash",
			Type: entity.WalletTypeNormal,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Wallet.Name != "Cash" {
			t.Errorf("expected name Cash, got %s", out.Wallet.Name)
		}

		transactions, err := uow.Repos().Transactions.FindByFilter(ctx, adapter.TransactionFilter{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(transactions) != 0 {
			t.Errorf("expected no seed transaction without initial balance, got %d", len(transactions))
		}
	})

	t.Run("seeds a positive initial balance as an ignored inflow", func(t *testing.T) {
		uow, clock, _ := testDeps(t)
		uc := NewCreateWalletUseCase(uow, clock)

		out, err := uc.Execute(ctx, CreateWalletInput{
			Name:           "Bank",
			Type:           entity.WalletTypeNormal,
			InitialBalance: decimal.RequireFromString("1234.56"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		transactions, err := uow.Repos().Transactions.FindByFilter(ctx, adapter.TransactionFilter{
			WalletID: &out.Wallet.ID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(transactions) != 1 {
			t.Fatalf("expected 1 seed transaction, got %d", len(transactions))
		}
		seed := transactions[0]
		if seed.Description != entity.InitialBalanceDescription {
			t.Errorf("expected description %q, got %q", entity.InitialBalanceDescription, seed.Description)
		}
		if !seed.IsIgnored {
			t.Error("expected seed transaction to be ignored")
		}
		if seed.Direction != entity.DirectionInflow {
			t.Errorf("expected inflow, got %s", seed.Direction)
		}
		if !seed.Amount.Equal(decimal.RequireFromString("1234.56")) {
			t.Errorf("expected amount 1234.56, got %s", seed.Amount)
		}
		if !seed.Date.Equal(today) {
			t.Errorf("expected date %s, got %s", today, seed.Date)
		}
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		uow, clock, _ := testDeps(t)
		uc := NewCreateWalletUseCase(uow, clock)

		if _, err := uc.Execute(ctx, CreateWalletInput{Name: "Cash", Type: entity.WalletTypeNormal}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := uc.Execute(ctx, CreateWalletInput{Name: "Cash", Type: entity.WalletTypeCredit})
		if !errors.Is(err, domainerror.ErrWalletNameTaken) {
			t.Errorf("expected ErrWalletNameTaken, got %v", err)
		}
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		uow, clock, _ := testDeps(t)
		uc := NewCreateWalletUseCase(uow, clock)

		_, err := uc.Execute(ctx, CreateWalletInput{Name: "X", Type: "savings"})
		if !errors.Is(err, domainerror.ErrInvalidWalletType) {
			t.Errorf("expected ErrInvalidWalletType, got %v", err)
		}
	})
}

func TestDeleteWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an empty wallet", func(t *testing.T) {
		uow, _, _ := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		uc := NewDeleteWalletUseCase(uow)

		if err := uc.Execute(ctx, DeleteWalletInput{WalletID: wallet.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := uow.Repos().Wallets.FindByID(ctx, wallet.ID); !errors.Is(err, domainerror.ErrWalletNotFound) {
			t.Errorf("expected ErrWalletNotFound, got %v", err)
		}
	})

	t.Run("refuses a wallet that owns transactions", func(t *testing.T) {
		uow, _, _ := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		mustCreateTransaction(t, uow, wallet.ID, today, entity.DirectionInflow, "10")
		uc := NewDeleteWalletUseCase(uow)

		err := uc.Execute(ctx, DeleteWalletInput{WalletID: wallet.ID})
		if !errors.Is(err, domainerror.ErrWalletHasTransactions) {
			t.Errorf("expected ErrWalletHasTransactions, got %v", err)
		}
	})
}

func TestComputeBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to today and may write the cache", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		mustCreateTransaction(t, uow, wallet.ID, today.AddDate(0, 0, -20), entity.DirectionInflow, "900")
		uc := NewComputeBalanceUseCase(uow, clock, cfg)

		out, err := uc.Execute(ctx, ComputeBalanceInput{WalletID: wallet.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.AsOf.Equal(today) {
			t.Errorf("expected asOf %s, got %s", today, out.AsOf)
		}
		if !out.Balance.Equal(decimal.RequireFromString("900")) {
			t.Errorf("expected balance 900, got %s", out.Balance)
		}

		snapshots, err := uow.Repos().Snapshots.FindByWallet(ctx, wallet.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(snapshots) != 1 {
			t.Errorf("expected a lazily created snapshot, got %d", len(snapshots))
		}
	})

	t.Run("historical probe leaves the cache untouched", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		mustCreateTransaction(t, uow, wallet.ID, today.AddDate(0, 0, -20), entity.DirectionInflow, "900")
		mustCreateTransaction(t, uow, wallet.ID, today.AddDate(0, 0, -5), entity.DirectionOutflow, "100")
		uc := NewComputeBalanceUseCase(uow, clock, cfg)

		asOf := today.AddDate(0, 0, -10)
		out, err := uc.Execute(ctx, ComputeBalanceInput{WalletID: wallet.ID, AsOf: &asOf})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Balance.Equal(decimal.RequireFromString("900")) {
			t.Errorf("expected balance 900 as of -10d, got %s", out.Balance)
		}

		snapshots, err := uow.Repos().Snapshots.FindByWallet(ctx, wallet.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(snapshots) != 0 {
			t.Errorf("expected no snapshots after historical probe, got %d", len(snapshots))
		}
	})
}

func TestBalanceHistory(t *testing.T) {
	ctx := context.Background()
	uow, clock, cfg := testDeps(t)
	wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)

	mustCreateTransaction(t, uow, wallet.ID, today.AddDate(0, 0, -9), entity.DirectionInflow, "100")
	mustCreateTransaction(t, uow, wallet.ID, today.AddDate(0, 0, -4), entity.DirectionInflow, "50")

	uc := NewBalanceHistoryUseCase(uow, clock, cfg)
	out, err := uc.Execute(ctx, BalanceHistoryInput{
		WalletID: wallet.ID,
		Start:    today.AddDate(0, 0, -9),
		End:      today,
		StepDays: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Points at -9, -6, -3, 0.
	if len(out.Points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(out.Points))
	}
	wantBalances := []string{"100", "100", "150", "150"}
	for i, want := range wantBalances {
		if !out.Points[i].Balance.Equal(decimal.RequireFromString(want)) {
			t.Errorf("point %d: expected balance %s, got %s", i, want, out.Points[i].Balance)
		}
	}

	snapshots, err := uow.Repos().Snapshots.FindByWallet(ctx, wallet.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snapshots) != 0 {
		t.Errorf("expected no snapshots after history walk, got %d", len(snapshots))
	}
}

func TestCalibrateWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("shortfall becomes an inflow income calibration", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		mustCreateTransaction(t, uow, wallet.ID, today.AddDate(0, 0, -5), entity.DirectionInflow, "100")
		uc := NewCalibrateWalletUseCase(uow, clock, cfg)

		out, err := uc.Execute(ctx, CalibrateWalletInput{
			WalletID:      wallet.ID,
			ActualBalance: decimal.RequireFromString("150"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		c := out.Transaction
		if !c.IsCalibration {
			t.Error("expected calibration flag")
		}
		if c.Direction != entity.DirectionInflow || c.Classification != entity.ClassificationIncome {
			t.Errorf("expected inflow/income, got %s/%s", c.Direction, c.Classification)
		}
		if !c.Amount.Equal(decimal.RequireFromString("50")) {
			t.Errorf("expected amount 50, got %s", c.Amount)
		}
		if c.Description != entity.CalibrationDescription {
			t.Errorf("expected description %q, got %q", entity.CalibrationDescription, c.Description)
		}
	})

	t.Run("excess becomes an outflow expense calibration", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		mustCreateTransaction(t, uow, wallet.ID, today.AddDate(0, 0, -5), entity.DirectionInflow, "100")
		uc := NewCalibrateWalletUseCase(uow, clock, cfg)

		out, err := uc.Execute(ctx, CalibrateWalletInput{
			WalletID:      wallet.ID,
			ActualBalance: decimal.RequireFromString("80"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		c := out.Transaction
		if c.Direction != entity.DirectionOutflow || c.Classification != entity.ClassificationExpense {
			t.Errorf("expected outflow/expense, got %s/%s", c.Direction, c.Classification)
		}
		if !c.Amount.Equal(decimal.RequireFromString("20")) {
			t.Errorf("expected amount 20, got %s", c.Amount)
		}
	})

	t.Run("credit wallet directions flip", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Card", entity.WalletTypeCredit)
		mustCreateTransaction(t, uow, wallet.ID, today.AddDate(0, 0, -5), entity.DirectionOutflow, "100")
		uc := NewCalibrateWalletUseCase(uow, clock, cfg)

		// Real debt is 130: more owed means more spending, an outflow.
		out, err := uc.Execute(ctx, CalibrateWalletInput{
			WalletID:      wallet.ID,
			ActualBalance: decimal.RequireFromString("130"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Transaction.Direction != entity.DirectionOutflow {
			t.Errorf("expected outflow on credit wallet, got %s", out.Transaction.Direction)
		}
		if !out.Transaction.Amount.Equal(decimal.RequireFromString("30")) {
			t.Errorf("expected amount 30, got %s", out.Transaction.Amount)
		}
	})

	t.Run("matching balance is rejected", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		mustCreateTransaction(t, uow, wallet.ID, today.AddDate(0, 0, -5), entity.DirectionInflow, "100")
		uc := NewCalibrateWalletUseCase(uow, clock, cfg)

		_, err := uc.Execute(ctx, CalibrateWalletInput{
			WalletID:      wallet.ID,
			ActualBalance: decimal.RequireFromString("100"),
		})
		if !errors.Is(err, domainerror.ErrBalanceAlreadyCorrect) {
			t.Errorf("expected ErrBalanceAlreadyCorrect, got %v", err)
		}
	})

	t.Run("invalidates snapshots from today", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		mustCreateTransaction(t, uow, wallet.ID, today.AddDate(0, 0, -5), entity.DirectionInflow, "100")

		stale := entity.NewWalletSnapshot(wallet.ID, today, decimal.RequireFromString("100"))
		if err := uow.Repos().Snapshots.Create(ctx, stale); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		uc := NewCalibrateWalletUseCase(uow, clock, cfg)
		if _, err := uc.Execute(ctx, CalibrateWalletInput{
			WalletID:      wallet.ID,
			ActualBalance: decimal.RequireFromString("140"),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		snapshots, err := uow.Repos().Snapshots.FindByWallet(ctx, wallet.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(snapshots) != 0 {
			t.Errorf("expected today's snapshot invalidated, got %d remaining", len(snapshots))
		}
	})
}
