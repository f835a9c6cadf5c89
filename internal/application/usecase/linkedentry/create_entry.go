// Package linkedentry contains the settlement use cases: creating and
// maintaining linked entries (splits, loans, debts, installments), linking
// settling transactions, unlinking and unclassifying.
package linkedentry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/domain/entity"
	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
)

// CreateEntryInput represents the input for linked entry creation.
type CreateEntryInput struct {
	LinkType             entity.LinkType
	PrimaryTransactionID uuid.UUID
	CounterpartyName     string
	UserAmount           *decimal.Decimal
	Notes                string
}

// CreateEntryOutput represents the output of linked entry creation.
type CreateEntryOutput struct {
	Entry *entity.LinkedEntry
}

// CreateEntryUseCase handles linked entry creation logic.
type CreateEntryUseCase struct {
	uow adapter.UnitOfWork
}

// NewCreateEntryUseCase creates a new CreateEntryUseCase instance.
func NewCreateEntryUseCase(uow adapter.UnitOfWork) *CreateEntryUseCase {
	return &CreateEntryUseCase{
		uow: uow,
	}
}

// Execute creates a linked entry over an existing primary transaction. The
// primary must already carry the entry type's classification; reclassifying
// it first is the mark-as-loan/debt flow.
func (uc *CreateEntryUseCase) Execute(ctx context.Context, input CreateEntryInput) (*CreateEntryOutput, error) {
	var out CreateEntryOutput

	err := uc.uow.Execute(ctx, func(repos adapter.Repositories) error {
		entry, err := stageCreateEntry(ctx, repos, input, false)
		if err != nil {
			return err
		}
		out.Entry = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// primaryRequirements returns the direction and classification a primary
// transaction must carry for the given entry type.
func primaryRequirements(linkType entity.LinkType) (entity.TransactionDirection, entity.TransactionClassification, error) {
	switch linkType {
	case entity.LinkTypeSplitPayment:
		return entity.DirectionOutflow, entity.ClassificationSplitPayment, nil
	case entity.LinkTypeLoan:
		return entity.DirectionOutflow, entity.ClassificationLend, nil
	case entity.LinkTypeDebt:
		return entity.DirectionInflow, entity.ClassificationBorrow, nil
	case entity.LinkTypeInstallment:
		return entity.DirectionReserved, entity.ClassificationInstallment, nil
	default:
		return "", "", domainerror.NewLinkedEntryError(
			domainerror.ErrCodeInvalidLinkType,
			fmt.Sprintf("unknown link type %q", linkType),
			nil,
		)
	}
}

// stageCreateEntry validates and writes a linked entry inside an already open
// unit of work. Shared with the mark-as-loan and mark-as-debt use cases,
// which pass reclassifyPrimary to stage the primary's classification change;
// direct creation requires the classification to match already.
func stageCreateEntry(ctx context.Context, repos adapter.Repositories, input CreateEntryInput, reclassifyPrimary bool) (*entity.LinkedEntry, error) {
	requiredDirection, requiredClassification, err := primaryRequirements(input.LinkType)
	if err != nil {
		return nil, err
	}

	primary, err := repos.Transactions.FindByID(ctx, input.PrimaryTransactionID)
	if err != nil {
		return nil, err
	}

	existing, err := repos.LinkedEntries.FindEntryByPrimaryTransaction(ctx, primary.ID)
	if err != nil && !errors.Is(err, domainerror.ErrLinkedEntryNotFound) {
		return nil, fmt.Errorf("failed to check existing entry: %w", err)
	}
	if existing != nil {
		return nil, domainerror.NewLinkedEntryError(
			domainerror.ErrCodeEntryAlreadyExists,
			"transaction already originates a linked entry",
			domainerror.ErrEntryAlreadyExists,
		)
	}

	if primary.Direction != requiredDirection {
		return nil, domainerror.NewLinkedEntryError(
			domainerror.ErrCodeWrongDirection,
			fmt.Sprintf("%s entries require a %s primary transaction", input.LinkType, requiredDirection),
			domainerror.ErrWrongDirection,
		)
	}

	total := primary.Amount
	pending := total

	if input.LinkType == entity.LinkTypeSplitPayment {
		if input.UserAmount == nil {
			return nil, domainerror.NewLinkedEntryError(
				domainerror.ErrCodeUserAmountRequired,
				"split payments require the payer's own share",
				domainerror.ErrUserAmountRequired,
			)
		}
		if input.UserAmount.IsNegative() || input.UserAmount.GreaterThan(total) {
			return nil, domainerror.NewLinkedEntryError(
				domainerror.ErrCodeUserAmountExceedsTotal,
				"user share must be between zero and the total amount",
				domainerror.ErrUserAmountExceedsTotal,
			)
		}
		pending = total.Sub(*input.UserAmount)
	} else if input.UserAmount != nil {
		return nil, domainerror.NewLinkedEntryError(
			domainerror.ErrCodeUserAmountRequired,
			"user share applies to split payments only",
			domainerror.ErrUserAmountRequired,
		)
	}

	if primary.Classification != requiredClassification {
		if !reclassifyPrimary {
			return nil, domainerror.NewLinkedEntryError(
				domainerror.ErrCodeWrongClassification,
				fmt.Sprintf("primary transaction must be classified %s before creating a %s entry", requiredClassification, input.LinkType),
				domainerror.ErrWrongClassification,
			)
		}
		primary.Classification = requiredClassification
		primary.UpdatedAt = time.Now().UTC()
		if err := repos.Transactions.Update(ctx, primary); err != nil {
			return nil, fmt.Errorf("failed to reclassify primary transaction: %w", err)
		}
	}

	entry := entity.NewLinkedEntry(
		input.LinkType,
		primary.ID,
		input.CounterpartyName,
		total,
		input.UserAmount,
		pending,
		input.Notes,
	)
	entry.RecomputeStatus() // a fully self-paid split is born settled

	if err := repos.LinkedEntries.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create linked entry: %w", err)
	}

	return entry, nil
}
