package linkedentry

import (
	"context"
	"fmt"

	"github.com/wallet-ledger/backend/internal/application/adapter"
	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// ListEntriesInput represents the input for linked entry listing.
type ListEntriesInput struct {
	Filter adapter.LinkedEntryFilter
}

// ListEntriesOutput represents the output of linked entry listing.
type ListEntriesOutput struct {
	Entries []*entity.LinkedEntry
}

// ListEntriesUseCase handles filtered linked entry listing.
type ListEntriesUseCase struct {
	uow adapter.UnitOfWork
}

// NewListEntriesUseCase creates a new ListEntriesUseCase instance.
func NewListEntriesUseCase(uow adapter.UnitOfWork) *ListEntriesUseCase {
	return &ListEntriesUseCase{
		uow: uow,
	}
}

// Execute lists linked entries matching the filter, newest first.
func (uc *ListEntriesUseCase) Execute(ctx context.Context, input ListEntriesInput) (*ListEntriesOutput, error) {
	entries, err := uc.uow.Repos().LinkedEntries.FindEntries(ctx, input.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return &ListEntriesOutput{Entries: entries}, nil
}
