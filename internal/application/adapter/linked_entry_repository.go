package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// LinkedEntryFilter describes the criteria for listing linked entries.
type LinkedEntryFilter struct {
	LinkType *entity.LinkType
	Statuses []entity.LinkStatus
	Limit    int
	Offset   int
}

// LinkedEntryRepository defines the interface for settlement persistence:
// linked entries and the join records tying settling transactions to them.
type LinkedEntryRepository interface {
	// CreateEntry creates a new linked entry.
	CreateEntry(ctx context.Context, entry *entity.LinkedEntry) error

	// FindEntryByID retrieves a linked entry by its ID.
	FindEntryByID(ctx context.Context, id uuid.UUID) (*entity.LinkedEntry, error)

	// FindEntryByPrimaryTransaction retrieves the entry originated by the
	// given primary transaction.
	FindEntryByPrimaryTransaction(ctx context.Context, transactionID uuid.UUID) (*entity.LinkedEntry, error)

	// FindEntries retrieves linked entries matching the filter, newest first.
	FindEntries(ctx context.Context, filter LinkedEntryFilter) ([]*entity.LinkedEntry, error)

	// UpdateEntry persists changes to an existing entry.
	UpdateEntry(ctx context.Context, entry *entity.LinkedEntry) error

	// DeleteEntry removes an entry. Its linked transactions cascade.
	DeleteEntry(ctx context.Context, id uuid.UUID) error

	// CreateLink creates a linked transaction join record.
	CreateLink(ctx context.Context, link *entity.LinkedTransaction) error

	// FindLinkByID retrieves a linked transaction by its ID.
	FindLinkByID(ctx context.Context, id uuid.UUID) (*entity.LinkedTransaction, error)

	// FindLinkByTransaction retrieves the link owning the given settling
	// transaction, if any.
	FindLinkByTransaction(ctx context.Context, transactionID uuid.UUID) (*entity.LinkedTransaction, error)

	// FindLinksByTransactionIDs retrieves all links whose settling
	// transaction is in ids.
	FindLinksByTransactionIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.LinkedTransaction, error)

	// FindLinksByEntry retrieves all links of an entry.
	FindLinksByEntry(ctx context.Context, entryID uuid.UUID) ([]*entity.LinkedTransaction, error)

	// DeleteLink removes a linked transaction join record.
	DeleteLink(ctx context.Context, id uuid.UUID) error

	// SettledAmount sums the amounts of the entry's settling transactions.
	// The amount lives on the transactions themselves; the join stores none.
	SettledAmount(ctx context.Context, entryID uuid.UUID) (decimal.Decimal, error)

	// SumPendingByTypes sums pending amounts of unsettled entries with the
	// given link types.
	SumPendingByTypes(ctx context.Context, types []entity.LinkType) (decimal.Decimal, error)

	// SumPendingInstallments sums pending amounts of unsettled installment
	// entries, optionally restricted to the wallet owning the primary
	// transaction.
	SumPendingInstallments(ctx context.Context, walletID *uuid.UUID) (decimal.Decimal, error)
}
