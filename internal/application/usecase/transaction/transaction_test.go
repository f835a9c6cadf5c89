package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
)

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and invalidates from the transaction date", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)

		// Snapshots at -10 and -2; a transaction at -5 must stale the
		// latter only.
		for _, daysAgo := range []int{10, 2} {
			s := entity.NewWalletSnapshot(wallet.ID, today.AddDate(0, 0, -daysAgo), decimal.Zero)
			if err := uow.Repos().Snapshots.Create(ctx, s); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		uc := NewCreateTransactionUseCase(uow, clock, cfg)
		out, err := uc.Execute(ctx, CreateTransactionInput{
			WalletID:       wallet.ID,
			Date:           today.AddDate(0, 0, -5),
			Direction:      entity.DirectionOutflow,
			Amount:         decimal.RequireFromString("45.90"),
			Classification: entity.ClassificationExpense,
			Description:    "groceries",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Transaction.Date.Equal(today.AddDate(0, 0, -5)) {
			t.Errorf("expected truncated date, got %s", out.Transaction.Date)
		}

		snapshots, err := uow.Repos().Snapshots.FindByWallet(ctx, wallet.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(snapshots) != 1 {
			t.Fatalf("expected 1 surviving snapshot, got %d", len(snapshots))
		}
		if !snapshots[0].SnapshotDate.Equal(today.AddDate(0, 0, -10)) {
			t.Errorf("expected the older snapshot to survive, got %s", snapshots[0].SnapshotDate)
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		uc := NewCreateTransactionUseCase(uow, clock, cfg)

		base := CreateTransactionInput{
			WalletID:       wallet.ID,
			Date:           today,
			Direction:      entity.DirectionOutflow,
			Amount:         decimal.RequireFromString("10"),
			Classification: entity.ClassificationExpense,
		}

		bad := base
		bad.Direction = "sideways"
		if _, err := uc.Execute(ctx, bad); !errors.Is(err, domainerror.ErrInvalidDirection) {
			t.Errorf("expected ErrInvalidDirection, got %v", err)
		}

		bad = base
		bad.Classification = "gift"
		if _, err := uc.Execute(ctx, bad); !errors.Is(err, domainerror.ErrInvalidClassification) {
			t.Errorf("expected ErrInvalidClassification, got %v", err)
		}

		bad = base
		bad.Amount = decimal.Zero
		if _, err := uc.Execute(ctx, bad); !errors.Is(err, domainerror.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}

		bad = base
		bad.WalletID = uuid.New()
		if _, err := uc.Execute(ctx, bad); !errors.Is(err, domainerror.ErrWalletNotFound) {
			t.Errorf("expected ErrWalletNotFound, got %v", err)
		}

		missing := uuid.New()
		bad = base
		bad.CategoryID = &missing
		if _, err := uc.Execute(ctx, bad); !errors.Is(err, domainerror.ErrCategoryNotFoundForTransaction) {
			t.Errorf("expected ErrCategoryNotFoundForTransaction, got %v", err)
		}
	})

	t.Run("safety guard rejects expensive retroactive writes", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		cfg.RebuildTxnThreshold = 2
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		for i := 0; i < 4; i++ {
			mustCreateTransaction(t, uow, wallet.ID, today.AddDate(0, 0, -i), entity.DirectionInflow, "1")
		}

		uc := NewCreateTransactionUseCase(uow, clock, cfg)
		input := CreateTransactionInput{
			WalletID:       wallet.ID,
			Date:           today.AddDate(0, 0, -200),
			Direction:      entity.DirectionOutflow,
			Amount:         decimal.RequireFromString("10"),
			Classification: entity.ClassificationExpense,
		}

		_, err := uc.Execute(ctx, input)
		var confirmErr *domainerror.ConfirmationRequiredError
		if !errors.As(err, &confirmErr) {
			t.Fatalf("expected ConfirmationRequiredError, got %v", err)
		}
		if confirmErr.ImpactCount != 4 {
			t.Errorf("expected impact 4, got %d", confirmErr.ImpactCount)
		}

		input.AllowLargeRebuild = true
		if _, err := uc.Execute(ctx, input); err != nil {
			t.Errorf("expected confirmed write to pass, got %v", err)
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("invalidates from the earlier of old and new dates", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		txn := mustCreateTransaction(t, uow, wallet.ID, today.AddDate(0, 0, -3), entity.DirectionOutflow, "10")

		for _, daysAgo := range []int{10, 5} {
			s := entity.NewWalletSnapshot(wallet.ID, today.AddDate(0, 0, -daysAgo), decimal.Zero)
			if err := uow.Repos().Snapshots.Create(ctx, s); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		newDate := today.AddDate(0, 0, -7)
		uc := NewUpdateTransactionUseCase(uow, clock, cfg)
		if _, err := uc.Execute(ctx, UpdateTransactionInput{
			TransactionID: txn.ID,
			Date:          &newDate,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		snapshots, err := uow.Repos().Snapshots.FindByWallet(ctx, wallet.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(snapshots) != 1 {
			t.Fatalf("expected 1 surviving snapshot, got %d", len(snapshots))
		}
		if !snapshots[0].SnapshotDate.Equal(today.AddDate(0, 0, -10)) {
			t.Errorf("expected only the -10d snapshot to survive, got %s", snapshots[0].SnapshotDate)
		}
	})

	t.Run("moving between wallets invalidates both", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		source := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		target := mustCreateWallet(t, uow, "Bank", entity.WalletTypeNormal)
		txn := mustCreateTransaction(t, uow, source.ID, today.AddDate(0, 0, -3), entity.DirectionOutflow, "10")

		for _, w := range []uuid.UUID{source.ID, target.ID} {
			s := entity.NewWalletSnapshot(w, today.AddDate(0, 0, -1), decimal.Zero)
			if err := uow.Repos().Snapshots.Create(ctx, s); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		uc := NewUpdateTransactionUseCase(uow, clock, cfg)
		if _, err := uc.Execute(ctx, UpdateTransactionInput{
			TransactionID: txn.ID,
			WalletID:      &target.ID,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, w := range []uuid.UUID{source.ID, target.ID} {
			snapshots, err := uow.Repos().Snapshots.FindByWallet(ctx, w)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(snapshots) != 0 {
				t.Errorf("expected wallet %s snapshots invalidated, got %d", w, len(snapshots))
			}
		}

		moved, err := uow.Repos().Transactions.FindByID(ctx, txn.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if moved.WalletID != target.ID {
			t.Errorf("expected transaction moved to %s, got %s", target.ID, moved.WalletID)
		}
	})

	t.Run("propagates shared fields to the transfer pair", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		source := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		target := mustCreateWallet(t, uow, "Bank", entity.WalletTypeNormal)

		transfer := NewCreateTransferUseCase(uow, clock, cfg)
		pairOut, err := transfer.Execute(ctx, CreateTransferInput{
			FromWalletID: source.ID,
			ToWalletID:   target.ID,
			Date:         today.AddDate(0, 0, -2),
			Amount:       decimal.RequireFromString("100"),
			Description:  "move",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		newAmount := decimal.RequireFromString("80")
		newDescription := "rent share"
		newClassification := entity.ClassificationExpense
		uc := NewUpdateTransactionUseCase(uow, clock, cfg)
		if _, err := uc.Execute(ctx, UpdateTransactionInput{
			TransactionID:  pairOut.Outflow.ID,
			Amount:         &newAmount,
			Classification: &newClassification,
			Description:    &newDescription,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		pair, err := uow.Repos().Transactions.FindByID(ctx, pairOut.Inflow.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !pair.Amount.Equal(newAmount) {
			t.Errorf("expected pair amount %s, got %s", newAmount, pair.Amount)
		}
		if pair.Classification != newClassification {
			t.Errorf("expected pair classification %q, got %q", newClassification, pair.Classification)
		}
		if pair.Description != newDescription {
			t.Errorf("expected pair description %q, got %q", newDescription, pair.Description)
		}
		if pair.Direction != entity.DirectionInflow {
			t.Errorf("pair direction must not change, got %s", pair.Direction)
		}
	})
}

func TestDeleteTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("empty batch is rejected", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		uc := NewDeleteTransactionsUseCase(uow, clock, cfg)

		_, err := uc.Execute(ctx, DeleteTransactionsInput{})
		if !errors.Is(err, domainerror.ErrEmptyTransactionIDs) {
			t.Errorf("expected ErrEmptyTransactionIDs, got %v", err)
		}
	})

	t.Run("missing IDs fail the whole batch", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		txn := mustCreateTransaction(t, uow, wallet.ID, today, entity.DirectionInflow, "10")
		uc := NewDeleteTransactionsUseCase(uow, clock, cfg)

		_, err := uc.Execute(ctx, DeleteTransactionsInput{
			TransactionIDs: []uuid.UUID{txn.ID, uuid.New()},
		})
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Fatalf("expected ErrTransactionNotFound, got %v", err)
		}

		// Atomic: the existing transaction must survive.
		if _, err := uow.Repos().Transactions.FindByID(ctx, txn.ID); err != nil {
			t.Errorf("expected transaction to survive failed batch, got %v", err)
		}
	})

	t.Run("deleting one transfer half deletes the other", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		source := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		target := mustCreateWallet(t, uow, "Bank", entity.WalletTypeNormal)

		transfer := NewCreateTransferUseCase(uow, clock, cfg)
		pairOut, err := transfer.Execute(ctx, CreateTransferInput{
			FromWalletID: source.ID,
			ToWalletID:   target.ID,
			Date:         today,
			Amount:       decimal.RequireFromString("60"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		uc := NewDeleteTransactionsUseCase(uow, clock, cfg)
		out, err := uc.Execute(ctx, DeleteTransactionsInput{
			TransactionIDs: []uuid.UUID{pairOut.Outflow.ID},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.DeletedCount != 2 {
			t.Errorf("expected 2 deletions, got %d", out.DeletedCount)
		}

		if _, err := uow.Repos().Transactions.FindByID(ctx, pairOut.Inflow.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected inflow half deleted, got %v", err)
		}
	})

	t.Run("deleting a settler restores the entry's pending amount", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)

		primary := mustCreateTransaction(t, uow, wallet.ID, today.AddDate(0, 0, -10), entity.DirectionOutflow, "300")
		entry := entity.NewLinkedEntry(entity.LinkTypeLoan, primary.ID, "Sam",
			primary.Amount, nil, primary.Amount, "")
		if err := uow.Repos().LinkedEntries.CreateEntry(ctx, entry); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		settler := mustCreateTransaction(t, uow, wallet.ID, today, entity.DirectionInflow, "120")
		link := entity.NewLinkedTransaction(entry.ID, settler.ID)
		if err := uow.Repos().LinkedEntries.CreateLink(ctx, link); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		entry.PendingAmount = entry.PendingAmount.Sub(settler.Amount)
		entry.RecomputeStatus()
		if err := uow.Repos().LinkedEntries.UpdateEntry(ctx, entry); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		uc := NewDeleteTransactionsUseCase(uow, clock, cfg)
		if _, err := uc.Execute(ctx, DeleteTransactionsInput{
			TransactionIDs: []uuid.UUID{settler.ID},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		restored, err := uow.Repos().LinkedEntries.FindEntryByID(ctx, entry.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !restored.PendingAmount.Equal(decimal.RequireFromString("300")) {
			t.Errorf("expected pending restored to 300, got %s", restored.PendingAmount)
		}
		if restored.Status != entity.LinkStatusPending {
			t.Errorf("expected status pending, got %s", restored.Status)
		}
	})

	t.Run("deleting a primary dissolves its entry", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)

		primary := mustCreateTransaction(t, uow, wallet.ID, today, entity.DirectionOutflow, "300")
		entry := entity.NewLinkedEntry(entity.LinkTypeLoan, primary.ID, "Sam",
			primary.Amount, nil, primary.Amount, "")
		if err := uow.Repos().LinkedEntries.CreateEntry(ctx, entry); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		uc := NewDeleteTransactionsUseCase(uow, clock, cfg)
		if _, err := uc.Execute(ctx, DeleteTransactionsInput{
			TransactionIDs: []uuid.UUID{primary.ID},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := uow.Repos().LinkedEntries.FindEntryByID(ctx, entry.ID); !errors.Is(err, domainerror.ErrLinkedEntryNotFound) {
			t.Errorf("expected entry dissolved, got %v", err)
		}
	})
}

func TestCreateTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("creates mutually paired halves", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		source := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		target := mustCreateWallet(t, uow, "Bank", entity.WalletTypeNormal)

		uc := NewCreateTransferUseCase(uow, clock, cfg)
		out, err := uc.Execute(ctx, CreateTransferInput{
			FromWalletID: source.ID,
			ToWalletID:   target.ID,
			Date:         today,
			Amount:       decimal.RequireFromString("250"),
			Description:  "to savings",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.Outflow.Classification != entity.ClassificationTransfer ||
			out.Inflow.Classification != entity.ClassificationTransfer {
			t.Error("expected both halves classified as transfers")
		}
		if out.Outflow.PairedTransactionID == nil || *out.Outflow.PairedTransactionID != out.Inflow.ID {
			t.Error("expected outflow to reference inflow")
		}
		if out.Inflow.PairedTransactionID == nil || *out.Inflow.PairedTransactionID != out.Outflow.ID {
			t.Error("expected inflow to reference outflow")
		}
	})

	t.Run("rejects same-wallet transfers", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)

		uc := NewCreateTransferUseCase(uow, clock, cfg)
		_, err := uc.Execute(ctx, CreateTransferInput{
			FromWalletID: wallet.ID,
			ToWalletID:   wallet.ID,
			Date:         today,
			Amount:       decimal.RequireFromString("10"),
		})
		if !errors.Is(err, domainerror.ErrSameWalletTransfer) {
			t.Errorf("expected ErrSameWalletTransfer, got %v", err)
		}
	})
}

func TestSetIgnored(t *testing.T) {
	ctx := context.Background()
	uow, _, _ := testDeps(t)
	wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
	a := mustCreateTransaction(t, uow, wallet.ID, today, entity.DirectionOutflow, "10")
	b := mustCreateTransaction(t, uow, wallet.ID, today, entity.DirectionOutflow, "20")

	uc := NewSetIgnoredUseCase(uow)
	out, err := uc.Execute(ctx, SetIgnoredInput{
		TransactionIDs: []uuid.UUID{a.ID, b.ID},
		Ignored:        true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.UpdatedCount != 2 {
		t.Errorf("expected 2 updates, got %d", out.UpdatedCount)
	}

	for _, id := range []uuid.UUID{a.ID, b.ID} {
		got, err := uow.Repos().Transactions.FindByID(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.IsIgnored {
			t.Errorf("expected transaction %s ignored", id)
		}
	}
}

func TestResolveCalibration(t *testing.T) {
	ctx := context.Background()

	newCalibration := func(t *testing.T, uow adapter.UnitOfWork, walletID uuid.UUID, direction entity.TransactionDirection, amount string) *entity.Transaction {
		t.Helper()
		classification := entity.ClassificationIncome
		if direction == entity.DirectionOutflow {
			classification = entity.ClassificationExpense
		}
		c := entity.NewTransaction(walletID, today, direction,
			decimal.RequireFromString(amount), classification, entity.CalibrationDescription)
		c.IsCalibration = true
		if err := uow.Repos().Transactions.Create(ctx, c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return c
	}

	realInput := func(direction entity.TransactionDirection, amount string, daysAgo int) CreateTransactionInput {
		classification := entity.ClassificationIncome
		if direction == entity.DirectionOutflow {
			classification = entity.ClassificationExpense
		}
		return CreateTransactionInput{
			Date:           today.AddDate(0, 0, -daysAgo),
			Direction:      direction,
			Amount:         decimal.RequireFromString(amount),
			Classification: classification,
			Description:    "remembered",
		}
	}

	t.Run("same direction shrinks the calibration", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		c := newCalibration(t, uow, wallet.ID, entity.DirectionInflow, "2000")

		uc := NewResolveCalibrationUseCase(uow, clock, cfg)
		out, err := uc.Execute(ctx, ResolveCalibrationInput{
			CalibrationID: c.ID,
			Transaction:   realInput(entity.DirectionInflow, "600", 5),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Calibration.Amount.Equal(decimal.RequireFromString("1400")) {
			t.Errorf("expected remainder 1400, got %s", out.Calibration.Amount)
		}
		if out.Calibration.IsIgnored {
			t.Error("expected calibration to stay visible")
		}
		if out.Transaction.WalletID != wallet.ID {
			t.Error("expected real transaction forced into the calibration's wallet")
		}
	})

	t.Run("exact match leaves a zero ignored marker", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		c := newCalibration(t, uow, wallet.ID, entity.DirectionInflow, "600")

		uc := NewResolveCalibrationUseCase(uow, clock, cfg)
		out, err := uc.Execute(ctx, ResolveCalibrationInput{
			CalibrationID: c.ID,
			Transaction:   realInput(entity.DirectionInflow, "600", 5),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Calibration.Amount.IsZero() {
			t.Errorf("expected zero remainder, got %s", out.Calibration.Amount)
		}
		if !out.Calibration.IsIgnored {
			t.Error("expected zero calibration to be ignored")
		}
	})

	t.Run("overshoot flips direction and classification", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		c := newCalibration(t, uow, wallet.ID, entity.DirectionInflow, "500")

		uc := NewResolveCalibrationUseCase(uow, clock, cfg)
		out, err := uc.Execute(ctx, ResolveCalibrationInput{
			CalibrationID: c.ID,
			Transaction:   realInput(entity.DirectionInflow, "800", 5),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Calibration.Amount.Equal(decimal.RequireFromString("300")) {
			t.Errorf("expected flipped remainder 300, got %s", out.Calibration.Amount)
		}
		if out.Calibration.Direction != entity.DirectionOutflow {
			t.Errorf("expected flipped direction outflow, got %s", out.Calibration.Direction)
		}
		if out.Calibration.Classification != entity.ClassificationExpense {
			t.Errorf("expected flipped classification expense, got %s", out.Calibration.Classification)
		}
	})

	t.Run("opposite direction grows the calibration", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		c := newCalibration(t, uow, wallet.ID, entity.DirectionInflow, "2000")

		uc := NewResolveCalibrationUseCase(uow, clock, cfg)
		out, err := uc.Execute(ctx, ResolveCalibrationInput{
			CalibrationID: c.ID,
			Transaction:   realInput(entity.DirectionOutflow, "2500", 5),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Calibration.Amount.Equal(decimal.RequireFromString("4500")) {
			t.Errorf("expected remainder 4500, got %s", out.Calibration.Amount)
		}
		if out.Calibration.Direction != entity.DirectionInflow {
			t.Errorf("expected direction unchanged, got %s", out.Calibration.Direction)
		}
	})

	t.Run("rejects non-calibration targets", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		regular := mustCreateTransaction(t, uow, wallet.ID, today, entity.DirectionInflow, "100")

		uc := NewResolveCalibrationUseCase(uow, clock, cfg)
		_, err := uc.Execute(ctx, ResolveCalibrationInput{
			CalibrationID: regular.ID,
			Transaction:   realInput(entity.DirectionInflow, "100", 5),
		})
		if !errors.Is(err, domainerror.ErrNotCalibration) {
			t.Errorf("expected ErrNotCalibration, got %v", err)
		}
	})
}

func TestMergeTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("merges into one and invalidates from the earliest date", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		first := mustCreateTransaction(t, uow, wallet.ID, today.AddDate(0, 0, -10), entity.DirectionOutflow, "120")
		second := mustCreateTransaction(t, uow, wallet.ID, today.AddDate(0, 0, -5), entity.DirectionOutflow, "80")

		s := entity.NewWalletSnapshot(wallet.ID, today.AddDate(0, 0, -7), decimal.Zero)
		if err := uow.Repos().Snapshots.Create(ctx, s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		uc := NewMergeTransactionsUseCase(uow, clock, cfg)
		out, err := uc.Execute(ctx, MergeTransactionsInput{
			TransactionIDs: []uuid.UUID{first.ID, second.ID},
			Date:           today.AddDate(0, 0, -5),
			Description:    "groceries",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Transaction.Amount.Equal(decimal.RequireFromString("200")) {
			t.Errorf("expected merged amount 200, got %s", out.Transaction.Amount)
		}
		if out.Transaction.Classification != entity.ClassificationExpense {
			t.Errorf("expected expense, got %s", out.Transaction.Classification)
		}
		if out.Transaction.Description != "groceries" {
			t.Errorf("expected description %q, got %q", "groceries", out.Transaction.Description)
		}

		if _, err := uow.Repos().Transactions.FindByID(ctx, first.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected first original deleted, got %v", err)
		}
		if _, err := uow.Repos().Transactions.FindByID(ctx, second.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected second original deleted, got %v", err)
		}

		snapshots, err := uow.Repos().Snapshots.FindByWallet(ctx, wallet.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(snapshots) != 0 {
			t.Errorf("expected snapshots invalidated, got %d", len(snapshots))
		}
	})

	t.Run("fewer than two distinct transactions is rejected", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		only := mustCreateTransaction(t, uow, wallet.ID, today, entity.DirectionOutflow, "50")

		uc := NewMergeTransactionsUseCase(uow, clock, cfg)
		_, err := uc.Execute(ctx, MergeTransactionsInput{
			TransactionIDs: []uuid.UUID{only.ID, only.ID},
			Date:           today,
		})
		if !errors.Is(err, domainerror.ErrMergeTooFew) {
			t.Errorf("expected ErrMergeTooFew, got %v", err)
		}
	})

	t.Run("mixed wallets are rejected", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		cash := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		bank := mustCreateWallet(t, uow, "Bank", entity.WalletTypeNormal)
		first := mustCreateTransaction(t, uow, cash.ID, today, entity.DirectionOutflow, "50")
		second := mustCreateTransaction(t, uow, bank.ID, today, entity.DirectionOutflow, "50")

		uc := NewMergeTransactionsUseCase(uow, clock, cfg)
		_, err := uc.Execute(ctx, MergeTransactionsInput{
			TransactionIDs: []uuid.UUID{first.ID, second.ID},
			Date:           today,
		})
		if !errors.Is(err, domainerror.ErrMergeMixedWallets) {
			t.Errorf("expected ErrMergeMixedWallets, got %v", err)
		}
	})

	t.Run("mixed directions are rejected", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		out := mustCreateTransaction(t, uow, wallet.ID, today, entity.DirectionOutflow, "50")
		in := mustCreateTransaction(t, uow, wallet.ID, today, entity.DirectionInflow, "50")

		uc := NewMergeTransactionsUseCase(uow, clock, cfg)
		_, err := uc.Execute(ctx, MergeTransactionsInput{
			TransactionIDs: []uuid.UUID{out.ID, in.ID},
			Date:           today,
		})
		if !errors.Is(err, domainerror.ErrMergeMixedDirections) {
			t.Errorf("expected ErrMergeMixedDirections, got %v", err)
		}
	})

	t.Run("calibrations cannot be merged", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		calibration := mustCreateTransaction(t, uow, wallet.ID, today, entity.DirectionOutflow, "50")
		calibration.IsCalibration = true
		if err := uow.Repos().Transactions.Update(ctx, calibration); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		regular := mustCreateTransaction(t, uow, wallet.ID, today, entity.DirectionOutflow, "50")

		uc := NewMergeTransactionsUseCase(uow, clock, cfg)
		_, err := uc.Execute(ctx, MergeTransactionsInput{
			TransactionIDs: []uuid.UUID{calibration.ID, regular.ID},
			Date:           today,
		})
		if !errors.Is(err, domainerror.ErrMergeSpecialTransaction) {
			t.Errorf("expected ErrMergeSpecialTransaction, got %v", err)
		}
	})

	t.Run("settlement classifications cannot be merged", func(t *testing.T) {
		uow, clock, cfg := testDeps(t)
		wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)
		lend := entity.NewTransaction(wallet.ID, today, entity.DirectionOutflow,
			decimal.RequireFromString("50"), entity.ClassificationLend, "lent out")
		if err := uow.Repos().Transactions.Create(ctx, lend); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		regular := mustCreateTransaction(t, uow, wallet.ID, today, entity.DirectionOutflow, "50")

		uc := NewMergeTransactionsUseCase(uow, clock, cfg)
		_, err := uc.Execute(ctx, MergeTransactionsInput{
			TransactionIDs: []uuid.UUID{lend.ID, regular.ID},
			Date:           today,
		})
		if !errors.Is(err, domainerror.ErrMergeSpecialTransaction) {
			t.Errorf("expected ErrMergeSpecialTransaction, got %v", err)
		}
	})
}
