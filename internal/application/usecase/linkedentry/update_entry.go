package linkedentry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
)

// UpdateEntryInput represents the input for linked entry update. Nil fields
// are left unchanged. UserAmount applies to split payments only.
type UpdateEntryInput struct {
	EntryID          uuid.UUID
	CounterpartyName *string
	Notes            *string
	UserAmount       *decimal.Decimal
}

// UpdateEntryOutput represents the output of linked entry update.
type UpdateEntryOutput struct {
	Entry *entity.LinkedEntry
}

// UpdateEntryUseCase handles linked entry metadata and share updates.
type UpdateEntryUseCase struct {
	uow adapter.UnitOfWork
}

// NewUpdateEntryUseCase creates a new UpdateEntryUseCase instance.
func NewUpdateEntryUseCase(uow adapter.UnitOfWork) *UpdateEntryUseCase {
	return &UpdateEntryUseCase{
		uow: uow,
	}
}

// Execute updates the entry. Changing the user share re-derives the pending
// amount from what has already been settled; a change that would owe back
// more than was settled is rejected rather than recorded as negative pending.
func (uc *UpdateEntryUseCase) Execute(ctx context.Context, input UpdateEntryInput) (*UpdateEntryOutput, error) {
	var out UpdateEntryOutput

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		entry, err := repos.LinkedEntries.FindEntryByID(ctx, input.EntryID)
		if err != nil {
			return err
		}

		if input.CounterpartyName != nil {
			entry.CounterpartyName = *input.CounterpartyName
		}
		if input.Notes != nil {
			entry.Notes = *input.Notes
		}

		if input.UserAmount != nil {
			if entry.LinkType != entity.LinkTypeSplitPayment {
				return domainerror.NewLinkedEntryError(
					domainerror.ErrCodeUserAmountRequired,
					"user share applies to split payments only",
					domainerror.ErrUserAmountRequired,
				)
			}
			if input.UserAmount.IsNegative() || input.UserAmount.GreaterThan(entry.TotalAmount) {
				return domainerror.NewLinkedEntryError(
					domainerror.ErrCodeUserAmountExceedsTotal,
					"user share must be between zero and the total amount",
					domainerror.ErrUserAmountExceedsTotal,
				)
			}

			settled, err := repos.LinkedEntries.SettledAmount(ctx, entry.ID)
			if err != nil {
				return fmt.Errorf("failed to sum settled amount: %w", err)
			}

			newPending := entry.TotalAmount.Sub(*input.UserAmount).Sub(settled)
			if newPending.IsNegative() {
				return domainerror.NewLinkedEntryError(
					domainerror.ErrCodeNegativePending,
					"settled amount already exceeds the new outstanding total",
					domainerror.ErrNegativePending,
				)
			}

			entry.UserAmount = input.UserAmount
			entry.PendingAmount = newPending
		}

		entry.RecomputeStatus()
		entry.UpdatedAt = time.Now().UTC()

		if err := repos.LinkedEntries.UpdateEntry(ctx, entry); err != nil {
			return fmt.Errorf("failed to update entry: %w", err)
		}

		out.Entry = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}
