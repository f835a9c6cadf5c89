package linkedentry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// SettlementTotalsInput represents the input for outstanding totals. A non-nil
// WalletID restricts the installment total to that wallet.
type SettlementTotalsInput struct {
	WalletID *uuid.UUID
}

// SettlementTotalsOutput represents the outstanding settlement totals:
// money owed to the user, money the user owes, and installment amounts still
// reserved against credit limits.
type SettlementTotalsOutput struct {
	OwedToUser          decimal.Decimal
	OwedByUser          decimal.Decimal
	PendingInstallments decimal.Decimal
}

// SettlementTotalsUseCase aggregates pending amounts across unsettled entries.
type SettlementTotalsUseCase struct {
	uow adapter.UnitOfWork
}

// NewSettlementTotalsUseCase creates a new SettlementTotalsUseCase instance.
func NewSettlementTotalsUseCase(uow adapter.UnitOfWork) *SettlementTotalsUseCase {
	return &SettlementTotalsUseCase{
		uow: uow,
	}
}

// Execute computes the three outstanding totals.
func (uc *SettlementTotalsUseCase) Execute(ctx context.Context, input SettlementTotalsInput) (*SettlementTotalsOutput, error) {
	repos := uc.uow.Repos()

	owedToUser, err := repos.LinkedEntries.SumPendingByTypes(ctx, []entity.LinkType{
		entity.LinkTypeSplitPayment,
		entity.LinkTypeLoan,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sum receivables: %w", err)
	}

	owedByUser, err := repos.LinkedEntries.SumPendingByTypes(ctx, []entity.LinkType{
		entity.LinkTypeDebt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sum debts: %w", err)
	}

	pendingInstallments, err := repos.LinkedEntries.SumPendingInstallments(ctx, input.WalletID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum pending installments: %w", err)
	}

	return &SettlementTotalsOutput{
		OwedToUser:          owedToUser,
		OwedByUser:          owedByUser,
		PendingInstallments: pendingInstallments,
	}, nil
}
