package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/domain/entity"
)

func TestMonthlySummary(t *testing.T) {
	ctx := context.Background()
	uow, _, _ := testDeps(t)
	wallet := mustCreateWallet(t, uow, "Cash", entity.WalletTypeNormal)

	month := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	groceries := entity.NewCategory("Groceries", "")
	if err := uow.Repos().Categories.Create(ctx, groceries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Plain expense inside the month.
	plain := mustCreateTransaction(t, uow, wallet.ID, month.AddDate(0, 0, 4), entity.DirectionOutflow, "200")
	plain.CategoryID = &groceries.ID
	if err := uow.Repos().Transactions.Update(ctx, plain); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A 3000 dinner fronted for friends, own share 1000: only the share is
	// real spending.
	split := entity.NewTransaction(wallet.ID, month.AddDate(0, 0, 10), entity.DirectionOutflow,
		decimal.RequireFromString("3000"), entity.ClassificationSplitPayment, "team dinner")
	if err := uow.Repos().Transactions.Create(ctx, split); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	share := decimal.RequireFromString("1000")
	splitEntry := entity.NewLinkedEntry(entity.LinkTypeSplitPayment, split.ID, "friends",
		split.Amount, &share, split.Amount.Sub(share), "")
	if err := uow.Repos().LinkedEntries.CreateEntry(ctx, splitEntry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Ignored and out-of-month expenses must not count.
	ignored := entity.NewTransaction(wallet.ID, month.AddDate(0, 0, 6), entity.DirectionOutflow,
		decimal.RequireFromString("999"), entity.ClassificationExpense, "refunded")
	ignored.IsIgnored = true
	if err := uow.Repos().Transactions.Create(ctx, ignored); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustCreateTransaction(t, uow, wallet.ID, month.AddDate(0, 1, 2), entity.DirectionOutflow, "888")

	uc := NewMonthlySummaryUseCase(uow)
	out, err := uc.Execute(ctx, MonthlySummaryInput{Month: month.AddDate(0, 0, 15)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := decimal.RequireFromString("1200"); !out.TotalExpense.Equal(want) {
		t.Errorf("expected total %s, got %s", want, out.TotalExpense)
	}

	byName := make(map[string]decimal.Decimal, len(out.ByCategory))
	for _, c := range out.ByCategory {
		byName[c.CategoryName] = c.Amount
	}
	if got, ok := byName["Groceries"]; !ok || !got.Equal(decimal.RequireFromString("200")) {
		t.Errorf("expected Groceries 200, got %s", got)
	}
	if got, ok := byName[UncategorizedLabel]; !ok || !got.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("expected %s 1000, got %s", UncategorizedLabel, got)
	}
}
