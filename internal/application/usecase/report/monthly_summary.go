// Package report contains reporting use cases built over the ledger.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
)

// UncategorizedLabel is the breakdown bucket for expenses without a category.
const UncategorizedLabel = "Uncategorized"

// MonthlySummaryInput represents the input for the monthly expense summary.
// Month is any date within the month to report.
type MonthlySummaryInput struct {
	Month time.Time
}

// CategoryExpense is one category's share of the month's spending.
type CategoryExpense struct {
	CategoryName string
	Amount       decimal.Decimal
}

// MonthlySummaryOutput represents the output of the monthly expense summary.
type MonthlySummaryOutput struct {
	Month        time.Time
	TotalExpense decimal.Decimal
	ByCategory   []CategoryExpense
}

// MonthlySummaryUseCase computes the month's real spending. Split payments
// count only the payer's own share: fronted money is a receivable, not an
// expense.
type MonthlySummaryUseCase struct {
	uow adapter.UnitOfWork
}

// NewMonthlySummaryUseCase creates a new MonthlySummaryUseCase instance.
func NewMonthlySummaryUseCase(uow adapter.UnitOfWork) *MonthlySummaryUseCase {
	return &MonthlySummaryUseCase{
		uow: uow,
	}
}

// Execute computes the total and per-category expenses for the month.
func (uc *MonthlySummaryUseCase) Execute(ctx context.Context, input MonthlySummaryInput) (*MonthlySummaryOutput, error) {
	from := time.Date(input.Month.Year(), input.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	repos := uc.uow.Repos()

	plainTotal, err := repos.Transactions.SumExpensesInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}

	outflows, err := repos.Transactions.FindReportableOutflowsInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load reportable outflows: %w", err)
	}

	splitShares := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	order := make([]string, 0)

	categoryNames := make(map[string]string)

	for _, t := range outflows {
		amount := t.Amount
		if t.Classification == entity.ClassificationSplitPayment {
			share, err := uc.splitShare(ctx, repos, t)
			if err != nil {
				return nil, err
			}
			amount = share
			splitShares = splitShares.Add(share)
		}

		label := UncategorizedLabel
		if t.CategoryID != nil {
			key := t.CategoryID.String()
			name, ok := categoryNames[key]
			if !ok {
				category, err := repos.Categories.FindByID(ctx, *t.CategoryID)
				if err != nil {
					if !errors.Is(err, domainerror.ErrCategoryNotFound) {
						return nil, fmt.Errorf("failed to load category: %w", err)
					}
					name = UncategorizedLabel
				} else {
					name = category.Name
				}
				categoryNames[key] = name
			}
			label = name
		}

		if _, ok := byCategory[label]; !ok {
			order = append(order, label)
		}
		byCategory[label] = byCategory[label].Add(amount)
	}

	out := MonthlySummaryOutput{
		Month:        from,
		TotalExpense: plainTotal.Add(splitShares),
	}
	for _, label := range order {
		out.ByCategory = append(out.ByCategory, CategoryExpense{
			CategoryName: label,
			Amount:       byCategory[label],
		})
	}

	return &out, nil
}

// splitShare resolves the payer's own share of a split payment. A split
// without its entry (not yet created, or already dissolved) counts in full.
func (uc *MonthlySummaryUseCase) splitShare(ctx context.Context, repos adapter.Repositories, t *entity.Transaction) (decimal.Decimal, error) {
	entry, err := repos.LinkedEntries.FindEntryByPrimaryTransaction(ctx, t.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrLinkedEntryNotFound) {
			return t.Amount, nil
		}
		return decimal.Zero, fmt.Errorf("failed to load split entry: %w", err)
	}
	if entry.UserAmount == nil {
		return t.Amount, nil
	}
	return *entry.UserAmount, nil
}
