package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// TransactionFilter describes the criteria for listing transactions.
type TransactionFilter struct {
	WalletID       *uuid.UUID
	CategoryID     *uuid.UUID
	Month          *time.Time // Any date within the month
	Direction      *entity.TransactionDirection
	Classification *entity.TransactionClassification
	Limit          int
	Offset         int
}

// TransactionRepository defines the interface for transaction persistence
// operations, including the aggregate sums the balance engine is built on.
type TransactionRepository interface {
	// Create creates a new transaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByIDs retrieves all transactions for the given IDs. The result may
	// be shorter than ids when some do not exist.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Transaction, error)

	// FindByFilter retrieves transactions matching the filter, newest first.
	FindByFilter(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	// Update persists changes to an existing transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// SetIgnored flips the is_ignored flag for the given transactions.
	SetIgnored(ctx context.Context, ids []uuid.UUID, ignored bool) error

	// SumByDirection sums amounts of the wallet's transactions with the
	// given direction and date <= until. When after is non-nil only
	// transactions with date > after are included.
	SumByDirection(ctx context.Context, walletID uuid.UUID, direction entity.TransactionDirection, after *time.Time, until time.Time) (decimal.Decimal, error)

	// SumOnDate sums amounts of the wallet's transactions with the given
	// direction dated exactly on date.
	SumOnDate(ctx context.Context, walletID uuid.UUID, direction entity.TransactionDirection, date time.Time) (decimal.Decimal, error)

	// CountSince counts the wallet's transactions dated on or after from.
	// The safety guard uses this as the rebuild impact of a retroactive write.
	CountSince(ctx context.Context, walletID uuid.UUID, from time.Time) (int64, error)

	// ExistsForWallet reports whether the wallet owns any transactions.
	ExistsForWallet(ctx context.Context, walletID uuid.UUID) (bool, error)

	// SumExpensesInRange sums non-ignored Outflow/Expense amounts with
	// from <= date < to.
	SumExpensesInRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// FindReportableOutflowsInRange retrieves non-ignored outflow
	// transactions classified Expense or SplitPayment with from <= date < to.
	FindReportableOutflowsInRange(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error)
}
